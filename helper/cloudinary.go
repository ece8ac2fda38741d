package helper

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// InitCloudinary returns nil when the credentials are absent; image uploads
// are then rejected at the handler.
func InitCloudinary() *cloudinary.Cloudinary {
	if os.Getenv("CLOUDINARY_CLOUD_NAME") == "" {
		log.Println("Cloudinary not configured, image uploads disabled")
		return nil
	}
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Printf("Cloudinary init failed: %v", err)
		return nil
	}
	return cld
}
