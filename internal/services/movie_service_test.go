package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"github.com/fathima-sithara/media-catalog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMediaRepo struct {
	items []*models.Media
}

func (r *fakeMediaRepo) Insert(_ context.Context, m *models.Media) error {
	m.ID = primitive.NewObjectID()
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeMediaRepo) find(id primitive.ObjectID) *models.Media {
	for _, m := range r.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (r *fakeMediaRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Media, error) {
	m := r.find(id)
	if m == nil {
		return nil, repository.ErrMediaNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMediaRepo) UpdateFields(_ context.Context, id primitive.ObjectID, m *models.Media) error {
	cur := r.find(id)
	if cur == nil {
		return repository.ErrMediaNotFound
	}
	cur.Title = m.Title
	cur.Description = m.Description
	cur.ReleaseYear = m.ReleaseYear
	cur.Type = m.Type
	cur.Director = m.Director
	cur.Budget = m.Budget
	cur.Location = m.Location
	cur.Duration = m.Duration
	return nil
}

func (r *fakeMediaRepo) SetPoster(_ context.Context, id primitive.ObjectID, posterID primitive.ObjectID) error {
	cur := r.find(id)
	if cur == nil {
		return repository.ErrMediaNotFound
	}
	pid := posterID
	cur.PosterID = &pid
	return nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrMediaNotFound
}

func (r *fakeMediaRepo) matches(m *models.Media, f repository.MediaFilter) bool {
	if f.ReleaseYear != nil && m.ReleaseYear != *f.ReleaseYear {
		return false
	}
	if f.Director != "" && !strings.Contains(strings.ToLower(m.Director), strings.ToLower(f.Director)) {
		return false
	}
	if f.Type != "" && string(m.Type) != f.Type {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Title)) {
		return false
	}
	return true
}

func (r *fakeMediaRepo) Find(_ context.Context, f repository.MediaFilter, skip, limit int64) ([]models.Media, error) {
	out := []models.Media{}
	var seen int64
	for _, m := range r.items {
		if !r.matches(m, f) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		if int64(len(out)) == limit {
			break
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMediaRepo) Count(_ context.Context, f repository.MediaFilter) (int64, error) {
	var n int64
	for _, m := range r.items {
		if r.matches(m, f) {
			n++
		}
	}
	return n, nil
}

type fakeImageRepo struct {
	imgs []models.Image
}

func (r *fakeImageRepo) Insert(_ context.Context, img *models.Image) error {
	if img.ID.IsZero() {
		img.ID = primitive.NewObjectID()
	}
	r.imgs = append(r.imgs, *img)
	return nil
}

func (r *fakeImageRepo) InsertMany(_ context.Context, imgs []models.Image) error {
	r.imgs = append(r.imgs, imgs...)
	return nil
}

func (r *fakeImageRepo) FindByMedia(_ context.Context, mediaID primitive.ObjectID) ([]models.Image, error) {
	out := []models.Image{}
	for _, img := range r.imgs {
		if img.MediaID == mediaID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) FindByMediaIDs(_ context.Context, mediaIDs []primitive.ObjectID) ([]models.Image, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range mediaIDs {
		want[id] = true
	}
	out := []models.Image{}
	for _, img := range r.imgs {
		if want[img.MediaID] {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, img := range r.imgs {
		if img.ID == id {
			r.imgs = append(r.imgs[:i], r.imgs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeImageRepo) DeleteGallery(_ context.Context, mediaID primitive.ObjectID, posterID *primitive.ObjectID) error {
	kept := r.imgs[:0]
	for _, img := range r.imgs {
		if img.MediaID == mediaID && (posterID == nil || img.ID != *posterID) {
			continue
		}
		kept = append(kept, img)
	}
	r.imgs = kept
	return nil
}

func (r *fakeImageRepo) DeleteByMedia(_ context.Context, mediaID primitive.ObjectID) error {
	kept := r.imgs[:0]
	for _, img := range r.imgs {
		if img.MediaID != mediaID {
			kept = append(kept, img)
		}
	}
	r.imgs = kept
	return nil
}

func newMovieFixture() (MovieService, *fakeMediaRepo, *fakeImageRepo, *fakeStore) {
	mediaRepo := &fakeMediaRepo{}
	imageRepo := &fakeImageRepo{}
	store := &fakeStore{}
	svc := NewMovieService(mediaRepo, imageRepo, NewUploader(store))
	return svc, mediaRepo, imageRepo, store
}

func movieInput() CreateMovieInput {
	poster := "data:image/png;base64,AAAA"
	return CreateMovieInput{
		Title:       "Inception",
		ReleaseYear: 2010,
		Type:        models.MediaTypeMovie,
		Director:    "Christopher Nolan",
		Images:      []string{"http://x/a.jpg", "http://x/b.jpg"},
		Poster:      &poster,
	}
}

func TestCreateMovieWithPoster(t *testing.T) {
	svc, mediaRepo, imageRepo, _ := newMovieFixture()

	movie, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)

	require.NotNil(t, movie.PosterID)
	require.NotNil(t, movie.Poster)
	assert.Equal(t, *movie.PosterID, movie.Poster.ID)
	assert.Equal(t, movie.ID, movie.Poster.MediaID)

	// gallery never contains the poster
	require.Len(t, movie.Images, 2)
	for _, img := range movie.Images {
		assert.NotEqual(t, *movie.PosterID, img.ID)
		assert.Equal(t, movie.ID, img.MediaID)
	}

	assert.Len(t, mediaRepo.items, 1)
	assert.Len(t, imageRepo.imgs, 3)
}

func TestCreateMovieWithoutPoster(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	in := movieInput()
	in.Poster = nil
	movie, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, movie.PosterID)
	assert.Nil(t, movie.Poster)
	assert.Len(t, movie.Images, 2)
}

func TestUpdatePosterLeavesGalleryUntouched(t *testing.T) {
	svc, _, imageRepo, _ := newMovieFixture()

	created, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)
	oldPosterID := *created.PosterID
	oldGallery := galleryIDs(created)

	newPoster := "http://x/new-poster.jpg"
	updated, err := svc.Update(context.Background(), created.ID.Hex(), UpdateMovieInput{
		Title:       "Inception",
		ReleaseYear: 2010,
		Type:        models.MediaTypeMovie,
		Poster:      &newPoster,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.PosterID)
	assert.NotEqual(t, oldPosterID, *updated.PosterID)
	assert.Equal(t, "http://x/new-poster.jpg", updated.Poster.URL)

	// gallery images survived the poster swap
	assert.Equal(t, oldGallery, galleryIDs(updated))

	// the old poster image row is gone
	for _, img := range imageRepo.imgs {
		assert.NotEqual(t, oldPosterID, img.ID)
	}
}

func TestUpdateImagesLeavesPosterUntouched(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	created, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)
	oldPosterID := *created.PosterID

	newImages := []string{"http://x/c.jpg"}
	updated, err := svc.Update(context.Background(), created.ID.Hex(), UpdateMovieInput{
		Title:       "Inception",
		ReleaseYear: 2010,
		Type:        models.MediaTypeMovie,
		Images:      &newImages,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.PosterID)
	assert.Equal(t, oldPosterID, *updated.PosterID)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "http://x/c.jpg", updated.Images[0].URL)
}

func TestUpdateEmptyImagesClearsGallery(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	created, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)

	empty := []string{}
	updated, err := svc.Update(context.Background(), created.ID.Hex(), UpdateMovieInput{
		Title:       "Inception",
		ReleaseYear: 2010,
		Type:        models.MediaTypeMovie,
		Images:      &empty,
	})
	require.NoError(t, err)

	assert.Empty(t, updated.Images)
	assert.NotNil(t, updated.PosterID)
}

func TestUpdateScalarFieldsOnly(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	created, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID.Hex(), UpdateMovieInput{
		Title:       "Inception (Director's Cut)",
		ReleaseYear: 2010,
		Type:        models.MediaTypeMovie,
	})
	require.NoError(t, err)

	assert.Equal(t, "Inception (Director's Cut)", updated.Title)
	assert.Equal(t, *created.PosterID, *updated.PosterID)
	assert.Equal(t, galleryIDs(created), galleryIDs(updated))
}

func TestUpdateMissingMovie(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateMovieInput{
		Title:       "x",
		ReleaseYear: 2000,
		Type:        models.MediaTypeMovie,
	})
	assert.ErrorIs(t, err, ErrMovieNotFound)

	_, err = svc.Update(context.Background(), "not-a-hex-id", UpdateMovieInput{})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestDeleteMovieCascades(t *testing.T) {
	svc, mediaRepo, imageRepo, _ := newMovieFixture()

	created, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID.Hex()))
	assert.Empty(t, mediaRepo.items)
	assert.Empty(t, imageRepo.imgs)

	err = svc.Delete(context.Background(), created.ID.Hex())
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrMovieNotFound)

	_, err = svc.GetByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestListPagination(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), CreateMovieInput{
			Title:       fmt.Sprintf("Movie %02d", i),
			ReleaseYear: 2000 + i%5,
			Type:        models.MediaTypeMovie,
		})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), ListMoviesQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "Movie 10", page.Items[0].Title)

	last, err := svc.List(context.Background(), ListMoviesQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
}

func TestListDefaults(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	page, err := svc.List(context.Background(), ListMoviesQuery{Page: 0, Limit: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(0), page.TotalPages)
}

func TestListFilters(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	seed := []CreateMovieInput{
		{Title: "Inception", ReleaseYear: 2010, Type: models.MediaTypeMovie, Director: "Christopher Nolan"},
		{Title: "Interstellar", ReleaseYear: 2014, Type: models.MediaTypeMovie, Director: "Christopher Nolan"},
		{Title: "Breaking Bad", ReleaseYear: 2008, Type: models.MediaTypeTVShow, Director: "Vince Gilligan"},
	}
	for _, in := range seed {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	year := 2010
	page, err := svc.List(context.Background(), ListMoviesQuery{Year: &year})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Inception", page.Items[0].Title)

	page, err = svc.List(context.Background(), ListMoviesQuery{Director: "nolan"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(context.Background(), ListMoviesQuery{Type: "TV_SHOW"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Breaking Bad", page.Items[0].Title)

	page, err = svc.List(context.Background(), ListMoviesQuery{Search: "inter"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Interstellar", page.Items[0].Title)
}

func TestListShapesGallery(t *testing.T) {
	svc, _, _, _ := newMovieFixture()

	_, err := svc.Create(context.Background(), movieInput())
	require.NoError(t, err)

	page, err := svc.List(context.Background(), ListMoviesQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	require.NotNil(t, item.PosterID)
	require.NotNil(t, item.Poster)
	for _, img := range item.Images {
		assert.NotEqual(t, *item.PosterID, img.ID)
	}
}

func galleryIDs(m *models.Media) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(m.Images))
	for i, img := range m.Images {
		out[i] = img.ID
	}
	return out
}
