package storage

import (
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// objectName builds a collision free name under folder with an extension matching the type.
func objectName(folder, contentType string, now time.Time) string {
	ext := ".bin"
	if mime := mimetype.Lookup(contentType); mime != nil && mime.Extension() != "" {
		ext = mime.Extension()
	}
	return path.Join(folder, fmt.Sprintf("%s-%s%s", uuid.New().String(), now.Format("20060102150405"), ext))
}
