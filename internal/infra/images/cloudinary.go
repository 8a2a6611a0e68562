package images

import "fmt"

// PlaceholderURL is served whenever a real image cannot be resolved.
const PlaceholderURL = "/static/placeholder.png"

// CDN builds delivery URLs for assets hosted under one cloud name.
type CDN struct {
	CloudName string
}

func NewCDN(cloudName string) *CDN {
	return &CDN{CloudName: cloudName}
}

func (c *CDN) Configured() bool {
	return c.CloudName != "" && c.CloudName != "YOUR_CLOUD_NAME"
}

// ImageURL resolves an opaque public id into a delivery URL scaled to
// width x height. Degrades to the placeholder when unconfigured or the
// id is empty.
func (c *CDN) ImageURL(publicID string, width, height int) string {
	if !c.Configured() || publicID == "" {
		return PlaceholderURL
	}

	transform := "c_fill,q_auto,f_auto"
	if width > 0 {
		transform += fmt.Sprintf(",w_%d", width)
	}
	if height > 0 {
		transform += fmt.Sprintf(",h_%d", height)
	}

	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s", c.CloudName, transform, publicID)
}

// Resolve picks the best displayable URL for a record that may carry
// either a drive share link or a CDN public id.
func (c *CDN) Resolve(driveLink, publicID string, width, height int) string {
	if url := DriveImageURL(driveLink, SizeLarge); url != "" {
		return url
	}
	if publicID != "" {
		return c.ImageURL(publicID, width, height)
	}
	return PlaceholderURL
}
