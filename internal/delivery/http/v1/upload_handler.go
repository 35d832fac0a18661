package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
	"yaake-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

const (
	maxUploadBytes    = 10 << 20 // 10 MiB
	photoMaxDimension = 1024
	photoJPEGQuality  = 85
)

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UploadHandler struct {
	uploader *storage.Uploader
	authUC   domain.AuthUsecase
}

// NewUploadHandler registers file upload routes. Uploaded files land in
// object storage and the resulting URL is saved on the caller's profile.
func NewUploadHandler(r *gin.RouterGroup, uploader *storage.Uploader, authUC domain.AuthUsecase) {
	handler := &UploadHandler{uploader: uploader, authUC: authUC}

	uploads := r.Group("/uploads")
	{
		uploads.POST("/resume", handler.UploadResume)
		uploads.POST("/photo", handler.UploadPhoto)
	}
}

// UploadResume godoc
// @Summary      Upload a resume
// @Description  Store a resume file and attach its URL to the caller's profile
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file (pdf, doc, docx, txt)"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /uploads/resume [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, filename, contentType, err := readUpload(c, resumeExtensions)
	if err != nil {
		c.Error(err)
		return
	}

	url, err := h.uploader.Upload(c, "resumes", userID, filename, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.UpdateProfile(c, userID, domain.UserProfileUpdate{ResumeURL: &url})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume uploaded", user)
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Description  Store a profile photo, compressed to JPEG, and attach its URL to the caller's profile
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Photo file (jpg, jpeg, png)"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /uploads/photo [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, filename, _, err := readUpload(c, photoExtensions)
	if err != nil {
		c.Error(err)
		return
	}

	// Photos are downscaled and re-encoded as JPEG
	compressed, err := compressImage(data, photoMaxDimension, photoJPEGQuality)
	if err != nil {
		c.Error(apperror.BadRequest("File is not a valid image"))
		return
	}
	filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"

	url, err := h.uploader.Upload(c, "photos", userID, filename, "image/jpeg", bytes.NewReader(compressed), int64(len(compressed)))
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.UpdateProfile(c, userID, domain.UserProfileUpdate{PhotoURL: &url})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Photo uploaded", user)
}

// readUpload pulls the multipart file into memory, enforcing size and
// extension limits.
func readUpload(c *gin.Context, allowed map[string]bool) ([]byte, string, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", apperror.BadRequest("Missing file field")
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, "", "", apperror.BadRequest("File exceeds the 10MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		return nil, "", "", apperror.BadRequest("Unsupported file type " + ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}

	return data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), nil
}

// compressImage downscales an image to maxDimension on its long side and
// re-encodes it as JPEG
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
