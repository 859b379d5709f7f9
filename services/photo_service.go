package services

import (
	"fmt"
	"mime/multipart"

	"github.com/autotradecenter/autotrade-api/utils"
)

// PhotoService handles vehicle photo upload, retrieval and deletion
type PhotoService interface {
	// UploadPhoto validates and stores a photo file, returns the storage key
	UploadPhoto(fileHeader *multipart.FileHeader) (string, error)

	// GetPhotoURL generates a URL for accessing a stored photo
	GetPhotoURL(photoKey string) (string, error)

	// DeletePhoto removes a photo from storage
	DeletePhoto(photoKey string) error
}

// S3PhotoService implements PhotoService using AWS S3 for storage
type S3PhotoService struct {
	s3Service S3Interface
}

var photoServiceInstance PhotoService

// InitPhotoService initializes the photo service with an S3 backend
func InitPhotoService(s3Service S3Interface) PhotoService {
	photoServiceInstance = &S3PhotoService{
		s3Service: s3Service,
	}
	return photoServiceInstance
}

// GetPhotoService returns the initialized photo service instance
func GetPhotoService() PhotoService {
	return photoServiceInstance
}

// SetPhotoService sets the photo service instance (primarily for testing)
func SetPhotoService(service PhotoService) {
	photoServiceInstance = service
}

// UploadPhoto validates and uploads a photo file to S3
func (s *S3PhotoService) UploadPhoto(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidatePhotoFile(fileHeader); err != nil {
		return "", err
	}

	key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return key, nil
}

// GetPhotoURL generates a presigned URL for the stored photo
func (s *S3PhotoService) GetPhotoURL(photoKey string) (string, error) {
	if photoKey == "" {
		return "", nil
	}
	return s.s3Service.GetPresignedURL(photoKey)
}

// DeletePhoto removes the photo from S3
func (s *S3PhotoService) DeletePhoto(photoKey string) error {
	if photoKey == "" {
		return nil
	}
	return s.s3Service.DeleteFile(photoKey)
}

// LocalPhotoService implements PhotoService on the local filesystem. It is
// used when no S3 bucket is configured.
type LocalPhotoService struct {
	uploadDir string
}

// InitLocalPhotoService initializes a filesystem-backed photo service
func InitLocalPhotoService(uploadDir string) PhotoService {
	photoServiceInstance = &LocalPhotoService{uploadDir: uploadDir}
	return photoServiceInstance
}

// UploadPhoto validates and saves a photo file to the upload directory
func (s *LocalPhotoService) UploadPhoto(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidatePhotoFile(fileHeader); err != nil {
		return "", err
	}
	return utils.SaveUploadedFile(fileHeader, s.uploadDir)
}

// GetPhotoURL returns the serving path for a locally stored photo
func (s *LocalPhotoService) GetPhotoURL(photoKey string) (string, error) {
	return utils.GetPhotoURL(photoKey), nil
}

// DeletePhoto removes a locally stored photo
func (s *LocalPhotoService) DeletePhoto(photoKey string) error {
	return utils.DeleteUploadedFile(photoKey, s.uploadDir)
}
