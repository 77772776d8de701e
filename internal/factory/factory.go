package factory

import (
	"fmt"
	"io"

	"go-photo-critique/internal/config"
	"go-photo-critique/internal/report"
	"go-photo-critique/internal/storage"
)

// StorageType represents the supported image storage backends
type StorageType string

const (
	// HTTPStorage fetches images over HTTP(S)
	HTTPStorage StorageType = config.StorageBackendHTTP
	// AzureStorage fetches images from Azure Blob Storage containers
	AzureStorage StorageType = config.StorageBackendAzure
)

// Format represents the supported report output formats
type Format string

const (
	// FormatJSON emits the critique as a JSON document
	FormatJSON Format = "json"
	// FormatMarkdown emits the critique as a Markdown report
	FormatMarkdown Format = "markdown"
)

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageFetcher, error)
}

// WriterFactory creates report writers
type WriterFactory interface {
	CreateWriter(format Format, output io.Writer) (report.Writer, error)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	azureAccount string
	azureKey     string
}

// NewStorageFactory creates a new storage factory. Azure credentials come
// from the application configuration and are only read when the azure
// backend is requested.
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{
		azureAccount: cfg.AzureStorageAccount,
		azureKey:     cfg.AzureStorageKey,
	}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case AzureStorage:
		return storage.NewAzureBlobFetcher(f.azureAccount, f.azureKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", storageType)
	}
}

// writerFactory implements WriterFactory
type writerFactory struct {
	pretty bool
}

// NewWriterFactory creates a new report writer factory. When pretty is
// true, JSON reports are indented for terminal reading.
func NewWriterFactory(pretty bool) WriterFactory {
	return &writerFactory{pretty: pretty}
}

// CreateWriter creates a report writer for the specified format
func (f *writerFactory) CreateWriter(format Format, output io.Writer) (report.Writer, error) {
	switch format {
	case FormatJSON:
		if f.pretty {
			return report.NewJSONWriter(output, report.WithPrettyPrint()), nil
		}
		return report.NewJSONWriter(output), nil
	case FormatMarkdown:
		return report.NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
