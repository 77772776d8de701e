package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"math"
	"net"
	"time"

	"github.com/google/uuid"

	"go-photo-critique/internal/analyzer"
	apperrors "go-photo-critique/internal/errors"
	"go-photo-critique/internal/exifinfo"
	"go-photo-critique/internal/observer"
	"go-photo-critique/internal/printcalc"
	"go-photo-critique/internal/repository"
	"go-photo-critique/internal/scoring"
	"go-photo-critique/internal/storage"
	"go-photo-critique/pkg/models"
)

const timestampFormat = "2006-01-02T15:04:05Z07:00"

// CritiqueService defines the interface for photo critiques
type CritiqueService interface {
	// CritiqueImage critiques an already-decoded image. Raw bytes, names and
	// print targets travel in opts.
	CritiqueImage(ctx context.Context, img image.Image, opts CritiqueOptions) *models.CritiqueResponse

	// CritiqueUpload decodes and critiques an uploaded file. A file whose
	// pixels cannot be decoded still yields a response: every metric is
	// marked unavailable and the aggregate falls back to the neutral
	// midpoint.
	CritiqueUpload(ctx context.Context, data []byte, filename string, opts CritiqueOptions) *models.CritiqueResponse

	// CritiqueURL fetches an image by URL and critiques it. Validation and
	// fetch failures are returned as AppErrors.
	CritiqueURL(ctx context.Context, imageURL string, opts CritiqueOptions) (*models.CritiqueResponse, error)

	// PrintReadiness reports print recommendations for bare pixel
	// dimensions, without running a critique.
	PrintReadiness(widthPx, heightPx int, targetWidthIn, targetHeightIn float64) (*models.PrintReadinessReport, error)

	// Common validation
	ValidateImageURL(imageURL string) error
}

// CritiqueOptions carries per-request inputs that are not the pixels
// themselves.
type CritiqueOptions struct {
	// RawBytes is the original encoded file, used for EXIF extraction.
	RawBytes []byte
	Filename string
	ImageURL string
	// Format is the decoded image format name (jpeg, png, ...).
	Format string
	// PrintWidthIn and PrintHeightIn, when both non-zero, add a
	// print-readiness section to the response.
	PrintWidthIn  float64
	PrintHeightIn float64
}

func (o CritiqueOptions) source() string {
	switch {
	case o.Filename != "":
		return o.Filename
	case o.ImageURL != "":
		return o.ImageURL
	default:
		return "inline"
	}
}

// critiqueService implements CritiqueService with the three metric analyzers
type critiqueService struct {
	imageRepo repository.ImageRepository
	exposure  analyzer.ExposureAnalyzer
	sharpness analyzer.SharpnessAnalyzer
	color     analyzer.ColorAnalyzer
	weights   models.ScoreWeights
	publisher observer.Subject
}

// NewCritiqueService creates a new critique service. The publisher may be
// nil, in which case no events are emitted.
func NewCritiqueService(
	imageRepository repository.ImageRepository,
	exposure analyzer.ExposureAnalyzer,
	sharpness analyzer.SharpnessAnalyzer,
	color analyzer.ColorAnalyzer,
	weights models.ScoreWeights,
	publisher observer.Subject,
) CritiqueService {
	return &critiqueService{
		imageRepo: imageRepository,
		exposure:  exposure,
		sharpness: sharpness,
		color:     color,
		weights:   weights,
		publisher: publisher,
	}
}

// CritiqueImage runs the three analyzers, summarizes EXIF, aggregates the
// scores, and optionally appends a print-readiness section.
func (s *critiqueService) CritiqueImage(ctx context.Context, img image.Image, opts CritiqueOptions) *models.CritiqueResponse {
	start := time.Now()
	source := opts.source()

	s.publish(ctx, observer.CritiqueEvent{
		EventType: observer.CritiqueStarted,
		Source:    source,
	})

	width, height := 0, 0
	if img != nil {
		bounds := img.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}

	exposure := s.exposure.Analyze(img)
	sharpness := s.sharpness.Analyze(img)
	color := s.color.Analyze(img)

	agg := scoring.Aggregate(
		scoreOrNeutral(exposure.Score, exposure.Available),
		scoreOrNeutral(sharpness.Score, sharpness.Available),
		scoreOrNeutral(color.Score, color.Available),
		&s.weights,
	)

	response := &models.CritiqueResponse{
		OK:        true,
		ID:        uuid.NewString(),
		Filename:  opts.Filename,
		ImageURL:  opts.ImageURL,
		Timestamp: start.Format(timestampFormat),
		Exif:      s.exifSummary(opts.RawBytes, width, height),
		Metrics: models.CritiqueMetrics{
			Exposure:  exposure,
			Sharpness: sharpness,
			Color:     color,
		},
		Score: agg,
	}
	if img != nil {
		response.Image = &models.ImageInfo{
			Width:  width,
			Height: height,
			Format: opts.Format,
		}
	}

	// Invalid print targets never fail an otherwise healthy critique; the
	// transport layers validate them before calling in.
	if opts.PrintWidthIn != 0 && opts.PrintHeightIn != 0 {
		if report, err := printcalc.Recommendations(width, height, opts.PrintWidthIn, opts.PrintHeightIn); err == nil {
			response.Print = report
		}
	}

	elapsed := time.Since(start)
	response.ProcessingTimeSec = roundTo(elapsed.Seconds(), 3)

	s.publish(ctx, observer.CritiqueEvent{
		EventType:      observer.CritiqueCompleted,
		Source:         source,
		ProcessingTime: elapsed,
		Success:        true,
		Grade:          agg.Grade,
	})

	return response
}

// CritiqueUpload decodes the uploaded bytes and critiques the image.
func (s *critiqueService) CritiqueUpload(ctx context.Context, data []byte, filename string, opts CritiqueOptions) *models.CritiqueResponse {
	opts.RawBytes = data
	if filename != "" {
		opts.Filename = filename
	}

	img, format, err := storage.DecodeImage(bytes.NewReader(data))
	if err != nil {
		return s.degradedResponse(ctx, opts, err)
	}

	opts.Format = format
	return s.CritiqueImage(ctx, img, opts)
}

// CritiqueURL validates and fetches the image, then critiques it.
func (s *critiqueService) CritiqueURL(ctx context.Context, imageURL string, opts CritiqueOptions) (*models.CritiqueResponse, error) {
	if err := s.ValidateImageURL(imageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}

	data, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		s.publish(ctx, observer.CritiqueEvent{
			EventType:    observer.ImageFetchFailed,
			Source:       imageURL,
			ErrorMessage: err.Error(),
		})
		s.publish(ctx, observer.CritiqueEvent{
			EventType:    observer.CritiqueFailed,
			Source:       imageURL,
			ErrorMessage: err.Error(),
		})
		return nil, classifyFetchError(err)
	}

	s.publish(ctx, observer.CritiqueEvent{
		EventType: observer.ImageFetched,
		Source:    imageURL,
		Success:   true,
		Metadata:  map[string]interface{}{"bytes": len(data)},
	})

	opts.ImageURL = imageURL
	return s.CritiqueUpload(ctx, data, opts.Filename, opts), nil
}

// PrintReadiness reports print recommendations for bare pixel dimensions.
func (s *critiqueService) PrintReadiness(widthPx, heightPx int, targetWidthIn, targetHeightIn float64) (*models.PrintReadinessReport, error) {
	return printcalc.Recommendations(widthPx, heightPx, targetWidthIn, targetHeightIn)
}

// ValidateImageURL validates the image URL
func (s *critiqueService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

// degradedResponse reports a critique whose pixels could not be decoded. The
// request still succeeds: every metric carries the decode error, the
// aggregate falls back to the neutral midpoint, and EXIF is still attempted
// from the raw bytes.
func (s *critiqueService) degradedResponse(ctx context.Context, opts CritiqueOptions, decodeErr error) *models.CritiqueResponse {
	start := time.Now()
	source := opts.source()

	s.publish(ctx, observer.CritiqueEvent{
		EventType: observer.CritiqueStarted,
		Source:    source,
	})

	msg := decodeErr.Error()
	agg := scoring.Aggregate(scoring.NeutralScore, scoring.NeutralScore, scoring.NeutralScore, &s.weights)

	response := &models.CritiqueResponse{
		OK:        true,
		ID:        uuid.NewString(),
		Filename:  opts.Filename,
		ImageURL:  opts.ImageURL,
		Timestamp: start.Format(timestampFormat),
		Exif:      s.exifSummary(opts.RawBytes, 0, 0),
		Metrics: models.CritiqueMetrics{
			Exposure:  models.ExposureResult{Error: msg},
			Sharpness: models.SharpnessResult{Error: msg},
			Color:     models.ColorResult{Error: msg},
		},
		Score: agg,
	}

	elapsed := time.Since(start)
	response.ProcessingTimeSec = roundTo(elapsed.Seconds(), 3)

	s.publish(ctx, observer.CritiqueEvent{
		EventType:      observer.CritiqueCompleted,
		Source:         source,
		ProcessingTime: elapsed,
		Success:        true,
		Grade:          agg.Grade,
		ErrorMessage:   msg,
	})

	return response
}

// exifSummary reads EXIF from the original file bytes when available.
// Without raw bytes there is nothing to parse, so only the decoded
// dimensions are reported.
func (s *critiqueService) exifSummary(raw []byte, width, height int) models.ExifSummary {
	if len(raw) > 0 {
		return exifinfo.ReadSummary(raw, width, height)
	}
	return models.ExifSummary{
		Available: true,
		HasExif:   false,
		Summary:   &models.ExifFields{WidthPx: width, HeightPx: height},
	}
}

func (s *critiqueService) publish(ctx context.Context, event observer.CritiqueEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	s.publisher.NotifyObservers(ctx, event)
}

// classifyFetchError maps transport failures onto AppError categories so the
// HTTP layer can answer 502 vs 504.
func classifyFetchError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError("image fetch timed out", err)
	}
	return apperrors.NewNetworkError("failed to fetch image", err)
}

func scoreOrNeutral(score float64, available bool) float64 {
	if !available {
		return scoring.NeutralScore
	}
	return score
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
