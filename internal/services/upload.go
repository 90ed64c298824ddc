package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const inlineImagePrefix = "data:image"

const (
	posterFolder  = "posters"
	galleryFolder = "images"
)

// ImageStore is the remote upload backend (S3 in production).
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// UploadedImage is a resolved image reference. Thumbnail is only set for
// payloads this service uploaded itself.
type UploadedImage struct {
	URL       string
	Thumbnail string
}

// ResolvedImages is the outcome of classifying a request's image strings.
type ResolvedImages struct {
	Poster  *UploadedImage
	Gallery []UploadedImage
}

// Uploader decides, per submitted image string, whether it is an inline data
// URI that needs uploading or an already-hosted URL to pass through.
type Uploader struct {
	store ImageStore
}

func NewUploader(store ImageStore) *Uploader {
	return &Uploader{store: store}
}

// Resolve uploads the inline entries and passes hosted URLs through. Gallery
// entries equal to the raw poster string or to the resolved poster URL are
// dropped so the poster never shows up twice. The first failed upload aborts
// the whole call.
func (u *Uploader) Resolve(ctx context.Context, images []string, poster *string) (*ResolvedImages, error) {
	out := &ResolvedImages{}

	rawPoster := ""
	if poster != nil {
		rawPoster = *poster
		if isInlineImage(rawPoster) {
			up, err := u.uploadInline(ctx, posterFolder, rawPoster)
			if err != nil {
				return nil, fmt.Errorf("upload poster: %w", err)
			}
			out.Poster = up
		} else if rawPoster != "" {
			out.Poster = &UploadedImage{URL: rawPoster}
		}
	}

	for _, img := range images {
		if rawPoster != "" && img == rawPoster {
			continue
		}
		if out.Poster != nil && img == out.Poster.URL {
			continue
		}
		if isInlineImage(img) {
			up, err := u.uploadInline(ctx, galleryFolder, img)
			if err != nil {
				return nil, fmt.Errorf("upload image: %w", err)
			}
			out.Gallery = append(out.Gallery, *up)
			continue
		}
		out.Gallery = append(out.Gallery, UploadedImage{URL: img})
	}
	return out, nil
}

func isInlineImage(s string) bool {
	return strings.HasPrefix(s, inlineImagePrefix)
}

func (u *Uploader) uploadInline(ctx context.Context, folder, dataURI string) (*UploadedImage, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	key := folder + "/" + uuid.NewString() + "." + extensionFor(contentType)
	url, err := u.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	up := &UploadedImage{URL: url}
	if thumb, err := generateThumbnail(data); err == nil {
		if thumbURL, err := u.store.Upload(ctx, key+"_thumb.jpg", "image/jpeg", thumb); err == nil {
			up.Thumbnail = thumbURL
		}
	}
	return up, nil
}

// decodeDataURI splits "data:image/png;base64,...." into its media type and
// decoded payload. Unpadded base64 is tolerated.
func decodeDataURI(s string) (contentType string, data []byte, err error) {
	rest := strings.TrimPrefix(s, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data uri")
	}
	contentType = meta
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		contentType = meta[:i]
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri payload: %w", err)
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	sub := strings.TrimPrefix(contentType, "image/")
	if sub == "" || sub == contentType {
		return "bin"
	}
	if sub == "jpeg" {
		return "jpg"
	}
	return sub
}

func generateThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
