package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dsmirnov/stockfolio/internal/common"
	sc "github.com/dsmirnov/stockfolio/internal/server/config"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// documentURLValidity bounds how long a presigned filing link stays usable.
const documentURLValidity = 15 * time.Minute

// presignAPI is the slice of the S3 presign client FilingService needs;
// tests substitute it through newPresignClient.
type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*signedRequest, error)
}

// signedRequest mirrors the URL-bearing part of the SDK's presigned request.
type signedRequest struct {
	URL string
}

// FilingService lists company filings and hands out short-lived presigned
// URLs for their source documents in object storage.
type FilingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewFilingService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *FilingService {
	return &FilingService{db: db, repomanager: m, config: cfg}
}

// ListBySymbol returns the filings for a catalog symbol, newest first.
// An unknown symbol yields common.ErrorNotFound.
func (s *FilingService) ListBySymbol(ctx context.Context, symbol string) ([]*models.Filing, error) {
	if _, err := s.repomanager.Stocks(s.db).GetBySymbol(ctx, symbol); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	filings, err := s.repomanager.Filings(s.db).ListBySymbol(ctx, symbol)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return filings, nil
}

// DocumentURL resolves a filing id to a presigned GET URL for its document.
func (s *FilingService) DocumentURL(ctx context.Context, filingID string) (string, error) {
	filing, err := s.repomanager.Filings(s.db).GetByID(ctx, filingID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	client, err := newPresignClient(ctx, s.config)
	if err != nil {
		return "", common.ErrorInternal
	}

	req, err := client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(filing.StorageKey),
	}, s3.WithPresignExpires(documentURLValidity))
	if err != nil {
		return "", common.ErrorInternal
	}

	return req.URL, nil
}

// newPresignClient builds the presign client from server config. It is a
// package variable so tests can stub the S3 dependency.
var newPresignClient = func(ctx context.Context, cfg *sc.Config) (presignAPI, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &sdkPresignClient{inner: s3.NewPresignClient(client)}, nil
}

// sdkPresignClient adapts the SDK presign client to presignAPI.
type sdkPresignClient struct {
	inner *s3.PresignClient
}

func (c *sdkPresignClient) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*signedRequest, error) {
	req, err := c.inner.PresignGetObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &signedRequest{URL: req.URL}, nil
}
