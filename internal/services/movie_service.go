package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"github.com/fathima-sithara/media-catalog/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type movieService struct {
	mediaRepo repository.MediaRepository
	imageRepo repository.ImageRepository
	uploader  *Uploader
}

func NewMovieService(mediaRepo repository.MediaRepository, imageRepo repository.ImageRepository, uploader *Uploader) MovieService {
	return &movieService{mediaRepo: mediaRepo, imageRepo: imageRepo, uploader: uploader}
}

// Create uploads all inline images first, then persists the media, its
// gallery, and finally the poster image. The poster image can only be created
// after the media row exists, hence the two-phase sequence.
func (s *movieService) Create(ctx context.Context, in CreateMovieInput) (*models.Media, error) {
	resolved, err := s.uploader.Resolve(ctx, in.Images, in.Poster)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		Title:       in.Title,
		Description: in.Description,
		ReleaseYear: in.ReleaseYear,
		Type:        in.Type,
		Director:    in.Director,
		Budget:      in.Budget,
		Location:    in.Location,
		Duration:    in.Duration,
	}
	if err := s.mediaRepo.Insert(ctx, media); err != nil {
		return nil, fmt.Errorf("insert media: %w", err)
	}

	if err := s.insertGallery(ctx, media.ID, resolved.Gallery); err != nil {
		return nil, err
	}
	if resolved.Poster != nil {
		if err := s.attachPoster(ctx, media.ID, resolved.Poster); err != nil {
			return nil, err
		}
	}
	return s.getPopulated(ctx, media.ID)
}

// Update touches the scalar fields always, and the gallery and poster only
// when the request carried those fields.
func (s *movieService) Update(ctx context.Context, id string, in UpdateMovieInput) (*models.Media, error) {
	oid, err := parseMediaID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.mediaRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, translateMediaErr(err)
	}

	var images []string
	if in.Images != nil {
		images = *in.Images
	}
	resolved, err := s.uploader.Resolve(ctx, images, in.Poster)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		Title:       in.Title,
		Description: in.Description,
		ReleaseYear: in.ReleaseYear,
		Type:        in.Type,
		Director:    in.Director,
		Budget:      in.Budget,
		Location:    in.Location,
		Duration:    in.Duration,
	}
	if err := s.mediaRepo.UpdateFields(ctx, oid, media); err != nil {
		return nil, translateMediaErr(err)
	}

	if in.Images != nil {
		if err := s.imageRepo.DeleteGallery(ctx, oid, current.PosterID); err != nil {
			return nil, fmt.Errorf("delete gallery: %w", err)
		}
		if err := s.insertGallery(ctx, oid, resolved.Gallery); err != nil {
			return nil, err
		}
	}

	if resolved.Poster != nil {
		if current.PosterID != nil {
			if err := s.imageRepo.Delete(ctx, *current.PosterID); err != nil {
				return nil, fmt.Errorf("delete old poster: %w", err)
			}
		}
		if err := s.attachPoster(ctx, oid, resolved.Poster); err != nil {
			return nil, err
		}
	}
	return s.getPopulated(ctx, oid)
}

func (s *movieService) GetByID(ctx context.Context, id string) (*models.Media, error) {
	oid, err := parseMediaID(id)
	if err != nil {
		return nil, err
	}
	return s.getPopulated(ctx, oid)
}

func (s *movieService) List(ctx context.Context, q ListMoviesQuery) (*MoviePage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	skip := int64(page-1) * int64(limit)

	filter := repository.MediaFilter{
		ReleaseYear: q.Year,
		Director:    q.Director,
		Type:        q.Type,
		Title:       q.Search,
	}
	items, err := s.mediaRepo.Find(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	total, err := s.mediaRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count media: %w", err)
	}

	if err := s.populatePage(ctx, items); err != nil {
		return nil, err
	}

	return &MoviePage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Delete removes the media's images (poster included) before the media itself.
func (s *movieService) Delete(ctx context.Context, id string) error {
	oid, err := parseMediaID(id)
	if err != nil {
		return err
	}
	if _, err := s.mediaRepo.FindByID(ctx, oid); err != nil {
		return translateMediaErr(err)
	}
	if err := s.imageRepo.DeleteByMedia(ctx, oid); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	return translateMediaErr(s.mediaRepo.Delete(ctx, oid))
}

func (s *movieService) insertGallery(ctx context.Context, mediaID primitive.ObjectID, gallery []UploadedImage) error {
	if len(gallery) == 0 {
		return nil
	}
	imgs := make([]models.Image, len(gallery))
	for i, g := range gallery {
		imgs[i] = models.Image{
			ID:        primitive.NewObjectID(),
			URL:       g.URL,
			Thumbnail: g.Thumbnail,
			MediaID:   mediaID,
		}
	}
	if err := s.imageRepo.InsertMany(ctx, imgs); err != nil {
		return fmt.Errorf("insert gallery: %w", err)
	}
	return nil
}

func (s *movieService) attachPoster(ctx context.Context, mediaID primitive.ObjectID, poster *UploadedImage) error {
	img := &models.Image{
		URL:       poster.URL,
		Thumbnail: poster.Thumbnail,
		MediaID:   mediaID,
	}
	if err := s.imageRepo.Insert(ctx, img); err != nil {
		return fmt.Errorf("insert poster image: %w", err)
	}
	if err := s.mediaRepo.SetPoster(ctx, mediaID, img.ID); err != nil {
		return fmt.Errorf("set poster: %w", err)
	}
	return nil
}

// getPopulated loads a media with its images split into poster and gallery.
// The poster is never part of the returned gallery.
func (s *movieService) getPopulated(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	media, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateMediaErr(err)
	}
	imgs, err := s.imageRepo.FindByMedia(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	shapeImages(media, imgs)
	return media, nil
}

// populatePage fetches the images for a whole page of media in one query.
func (s *movieService) populatePage(ctx context.Context, items []models.Media) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	imgs, err := s.imageRepo.FindByMediaIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("find images: %w", err)
	}
	byMedia := make(map[primitive.ObjectID][]models.Image, len(items))
	for _, img := range imgs {
		byMedia[img.MediaID] = append(byMedia[img.MediaID], img)
	}
	for i := range items {
		shapeImages(&items[i], byMedia[items[i].ID])
	}
	return nil
}

func shapeImages(media *models.Media, imgs []models.Image) {
	media.Images = []models.Image{}
	for _, img := range imgs {
		if media.PosterID != nil && img.ID == *media.PosterID {
			poster := img
			media.Poster = &poster
			continue
		}
		media.Images = append(media.Images, img)
	}
}

func parseMediaID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrMovieNotFound
	}
	return oid, nil
}

func translateMediaErr(err error) error {
	if errors.Is(err, repository.ErrMediaNotFound) {
		return ErrMovieNotFound
	}
	return err
}
