package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlobFetcher implements ImageFetcher over an Azure Blob Storage
// account. Blob URLs carry the container as the first path segment:
// https://host/container/path/to/blob.jpg.
type AzureBlobFetcher struct {
	client *azblob.Client
}

// NewAzureBlobFetcher creates a shared-key Azure blob fetcher.
func NewAzureBlobFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureBlobFetcher{client: client}, nil
}

func (f *AzureBlobFetcher) FetchImage(ctx context.Context, blobURL string) ([]byte, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}

	containerName, blobName, ok := strings.Cut(strings.TrimPrefix(parsedURL.Path, "/"), "/")
	if !ok || containerName == "" || blobName == "" {
		return nil, fmt.Errorf("blob URL path must be /container/blob, got %q", parsedURL.Path)
	}

	downloadResponse, err := f.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(io.LimitReader(retryReader, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	return data, nil
}
