package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var cld *cloudinary.Cloudinary

// InitCloudinary initialise la connexion à Cloudinary
func InitCloudinary() error {
	var err error

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("les variables d'environnement Cloudinary ne sont pas définies")
	}

	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("erreur lors de l'initialisation de Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("erreur lors de la vérification de la connexion à Cloudinary: %v", err)
	}

	LogSuccess("Cloudinary initialisé et connexion vérifiée")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

// Vérifie si l'extension du fichier est supportée
func isValidImageType(filename string) bool {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
	lowerFilename := strings.ToLower(filename)

	for _, ext := range validExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// UploadImage télécharge une image (post ou avatar) vers Cloudinary et
// retourne son URL
func UploadImage(file *multipart.FileHeader, folder string, prefix string) (string, error) {
	if !isValidImageType(file.Filename) {
		return "", fmt.Errorf("format d'image non supporté. Utilisez JPG, PNG, GIF, WEBP ou BMP")
	}

	// 10MB max
	if file.Size > 10*1024*1024 {
		return "", fmt.Errorf("taille d'image trop grande. Maximum 10MB autorisé")
	}

	if cld == nil {
		if err := InitCloudinary(); err != nil {
			return "", err
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("erreur lors de l'ouverture du fichier: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", prefix, uuid.NewString())

	uploadResult, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    boolPointer(false),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("erreur lors du téléchargement vers Cloudinary: %v", err)
	}

	if uploadResult.SecureURL == "" {
		return "", fmt.Errorf("URL sécurisée vide dans la réponse de Cloudinary")
	}

	return uploadResult.SecureURL, nil
}

// DeleteImage supprime une image précédemment téléchargée, à partir de son URL
func DeleteImage(imageURL string) error {
	if cld == nil {
		if err := InitCloudinary(); err != nil {
			return err
		}
	}

	publicID := extractPublicID(imageURL)
	if publicID == "" {
		return fmt.Errorf("impossible d'extraire le public ID de l'URL: %s", imageURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// extractPublicID retrouve "<dossier>/<id>" dans une URL Cloudinary:
// .../upload/v123456/<dossier>/<id>.<ext>
func extractPublicID(imageURL string) string {
	parts := strings.Split(imageURL, "/upload/")
	if len(parts) != 2 {
		return ""
	}

	path := parts[1]
	if idx := strings.Index(path, "/"); idx >= 0 && strings.HasPrefix(path, "v") {
		path = path[idx+1:]
	}
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		path = path[:idx]
	}
	return path
}
