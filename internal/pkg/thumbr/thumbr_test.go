package thumbr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailURL(t *testing.T) {
	helper := New([]string{"https://s2.qwant.com/thumbr"}, "", true)

	url := helper.ThumbnailURL(
		"https://media-cdn.tripadvisor.com/media/photo-o/0f/e9/04/82/photo0jpg.jpg", 0, 165)

	assert.Equal(t,
		"https://s2.qwant.com/thumbr/0x165/f/3/68116512232b4299814330da19513bb35915de590c814b17a3b598aee66c78/photo0jpg.jpg"+
			"?u=https%3A%2F%2Fmedia-cdn.tripadvisor.com%2Fmedia%2Fphoto-o%2F0f%2Fe9%2F04%2F82%2Fphoto0jpg.jpg&q=0&b=1&p=0&a=0",
		url)
}

func TestThumbnailURLAppendsExtension(t *testing.T) {
	helper := New([]string{"https://s1.qwant.com/thumbr"}, "salt", true)

	url := helper.ThumbnailURL("https://example.org/picture", 0, 0)
	assert.Contains(t, url, "picture.jpg?")
}

func TestThumbnailURLDisabled(t *testing.T) {
	helper := New(nil, "", true)
	assert.Equal(t, "https://example.org/a.png", helper.ThumbnailURL("https://example.org/a.png", 0, 0))

	helper = New([]string{"https://s1.qwant.com/thumbr"}, "", false)
	assert.Equal(t, "https://example.org/a.png", helper.ThumbnailURL("https://example.org/a.png", 0, 0))
}

func TestThumbnailURLShardSelection(t *testing.T) {
	helper := New([]string{"https://s1.qwant.com/thumbr", "https://s2.qwant.com/thumbr"}, "", true)

	// First hex digit of the hash is 'f' (15), odd, so the second
	// shard serves the tripadvisor photo above.
	url := helper.ThumbnailURL(
		"https://media-cdn.tripadvisor.com/media/photo-o/0f/e9/04/82/photo0jpg.jpg", 0, 165)
	assert.Contains(t, url, "https://s2.qwant.com/thumbr/")
}
