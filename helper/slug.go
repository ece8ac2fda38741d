package helper

import (
	"fmt"

	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/gosimple/slug"
)

// UniqueProductSlug derives a url-safe slug from the product name, suffixing
// a counter on collision.
func UniqueProductSlug(name string, excludeID uint) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		database.DB.Model(&model.Product{}).
			Where("slug = ? AND id <> ?", candidate, excludeID).
			Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
