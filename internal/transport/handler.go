package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-photo-critique/internal/config"
	apperrors "go-photo-critique/internal/errors"
	"go-photo-critique/internal/logger"
	"go-photo-critique/internal/observer"
	"go-photo-critique/internal/service"
	"go-photo-critique/pkg/models"
	"go-photo-critique/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ErrorResponse = models.ErrorResponse

func NewHandler(
	critiques service.CritiqueService,
	metrics *observer.MetricsObserver,
	uploads *validation.UploadValidator,
	cfg *config.Config,
) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)

	api := r.Group("/api/v1")
	api.POST("/critique", critiqueUpload(critiques, uploads, cfg))
	api.POST("/critique/url", critiqueURL(critiques, cfg))
	api.GET("/print-readiness", printReadiness(critiques))
	api.GET("/stats", stats(metrics))

	return r
}

func critiqueUpload(critiques service.CritiqueService, uploads *validation.UploadValidator, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing critique upload")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			if isBodyTooLarge(err) {
				respondError(c, http.StatusRequestEntityTooLarge, "request body too large", err)
				return
			}
			respondError(c, http.StatusBadRequest, "missing file field", err)
			return
		}

		printWidth, printHeight, err := parsePrintTarget(c.PostForm("print_width_in"), c.PostForm("print_height_in"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid print target", err)
			return
		}

		if err := uploads.ValidateUpload(fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid upload", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to open upload", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			if isBodyTooLarge(err) {
				respondError(c, http.StatusRequestEntityTooLarge, "request body too large", err)
				return
			}
			respondError(c, http.StatusBadRequest, "failed to read upload", err)
			return
		}

		response := critiques.CritiqueUpload(ctx, data, fileHeader.Filename, service.CritiqueOptions{
			PrintWidthIn:  printWidth,
			PrintHeightIn: printHeight,
		})

		logger.WithFields(logrus.Fields{
			"filename":            fileHeader.Filename,
			"overall":             response.Score.Overall,
			"grade":               response.Score.Grade,
			"processing_time_sec": response.ProcessingTimeSec,
		}).Info("Critique completed")

		c.JSON(http.StatusOK, response)
	}
}

func critiqueURL(critiques service.CritiqueService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing critique by URL")

		var req models.CritiqueURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if req.PrintWidthIn < 0 || req.PrintHeightIn < 0 {
			respondError(c, http.StatusBadRequest, "invalid print target",
				errors.New("print size must be positive inches"))
			return
		}

		response, err := critiques.CritiqueURL(ctx, req.URL, service.CritiqueOptions{
			PrintWidthIn:  req.PrintWidthIn,
			PrintHeightIn: req.PrintHeightIn,
		})
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Failed to critique image by URL")
			respondError(c, apperrors.GetStatusCode(err), "failed to critique image", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                 req.URL,
			"overall":             response.Score.Overall,
			"grade":               response.Score.Grade,
			"processing_time_sec": response.ProcessingTimeSec,
		}).Info("Critique completed")

		c.JSON(http.StatusOK, response)
	}
}

func printReadiness(critiques service.CritiqueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		widthPx, err := strconv.Atoi(strings.TrimSpace(c.Query("width_px")))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid width_px", err)
			return
		}
		heightPx, err := strconv.Atoi(strings.TrimSpace(c.Query("height_px")))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid height_px", err)
			return
		}
		printWidth, printHeight, err := parsePrintTarget(c.Query("print_width_in"), c.Query("print_height_in"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid print target", err)
			return
		}

		report, err := critiques.PrintReadiness(widthPx, heightPx, printWidth, printHeight)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "print readiness failed", err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func stats(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": "photo-critique-api",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// parsePrintTarget reads optional print dimensions. Empty strings mean no
// print section is wanted.
func parsePrintTarget(widthStr, heightStr string) (float64, float64, error) {
	width, err := parseOptionalFloat(widthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("print_width_in: %w", err)
	}
	height, err := parseOptionalFloat(heightStr)
	if err != nil {
		return 0, 0, fmt.Errorf("print_height_in: %w", err)
	}
	if width < 0 || height < 0 {
		return 0, 0, errors.New("print size must be positive inches")
	}
	return width, height, nil
}

func parseOptionalFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
