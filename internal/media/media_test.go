package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rooneyform-backend/internal/model"
)

func TestBuildAbsoluteURL(t *testing.T) {
	base := "http://localhost:8080/"

	t.Run("relative path joined against base", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8080/static/a.jpg", BuildAbsoluteURL(base, "static/a.jpg"))
		assert.Equal(t, "http://localhost:8080/static/a.jpg", BuildAbsoluteURL(base, "/static/a.jpg"))
	})

	t.Run("absolute URL passes through", func(t *testing.T) {
		assert.Equal(t, "https://cdn.example.com/a.jpg", BuildAbsoluteURL(base, "https://cdn.example.com/a.jpg"))
	})

	t.Run("empty path stays empty", func(t *testing.T) {
		assert.Equal(t, "", BuildAbsoluteURL(base, ""))
	})
}

func TestNgrokBypassParameter(t *testing.T) {
	t.Run("appended for ngrok hosts", func(t *testing.T) {
		got := BuildAbsoluteURL("https://abc123.ngrok-free.app/", "static/a.jpg")
		assert.Equal(t, "https://abc123.ngrok-free.app/static/a.jpg?ngrok-skip-browser-warning=true", got)
	})

	t.Run("not duplicated when already present", func(t *testing.T) {
		raw := "https://abc123.ngrok-free.app/a.jpg?ngrok-skip-browser-warning=true"
		assert.Equal(t, raw, BuildAbsoluteURL("http://localhost/", raw))
	})

	t.Run("existing query preserved", func(t *testing.T) {
		got := BuildAbsoluteURL("http://localhost/", "https://abc123.ngrok-free.app/a.jpg?v=2")
		assert.Contains(t, got, "v=2")
		assert.Contains(t, got, "ngrok-skip-browser-warning=true")
	})

	t.Run("other hosts untouched", func(t *testing.T) {
		raw := "https://example.com/a.jpg"
		assert.Equal(t, raw, BuildAbsoluteURL("http://localhost/", raw))
	})
}

func TestNormalizeProduct(t *testing.T) {
	product := &model.Product{
		ImageURL: "static/main.jpg",
		GalleryImages: []model.ProductImage{
			{ImageURL: "static/extra.jpg"},
		},
	}

	NormalizeProduct("http://localhost:8080/", product)

	assert.Equal(t, "http://localhost:8080/static/main.jpg", product.ImageURL)
	assert.Equal(t, "http://localhost:8080/static/extra.jpg", product.GalleryImages[0].ImageURL)
}

func TestNormalizeProductNil(t *testing.T) {
	assert.NotPanics(t, func() { NormalizeProduct("http://localhost/", nil) })
}
