package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/proto"
	"github.com/MikhailRaia/shorturls/internal/service"
)

// ShortURLGRPCServer exposes the URL service over gRPC. Short URLs in its
// responses always use the configured base URL since there is no Host header.
type ShortURLGRPCServer struct {
	urlService URLService
	baseURL    string
}

func NewShortURLGRPCServer(urlService URLService, baseURL string) *ShortURLGRPCServer {
	return &ShortURLGRPCServer{
		urlService: urlService,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *ShortURLGRPCServer) Create(ctx context.Context, req *proto.CreateRequest) (*proto.CreateResponse, error) {
	if req.Url == "" {
		return nil, status.Error(codes.InvalidArgument, "url is required")
	}

	result, err := s.urlService.CreateShortURL(ctx, model.CreateRequest{
		URL:       req.Url,
		Validity:  req.Validity,
		Shortcode: req.Shortcode,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return &proto.CreateResponse{ShortUrl: buildShortURL(s.baseURL, result.Shortcode), Expiry: result.Expiry}, nil
}

func (s *ShortURLGRPCServer) Retrieve(ctx context.Context, req *proto.RetrieveRequest) (*proto.RetrieveResponse, error) {
	if req.Shortcode == "" {
		return nil, status.Error(codes.InvalidArgument, "shortcode is required")
	}

	entry, err := s.urlService.Resolve(ctx, req.Shortcode)
	if err != nil {
		return nil, toStatus(err)
	}

	return &proto.RetrieveResponse{OriginalUrl: entry.URL}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrDuplicateShortcode):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrExpired):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		log.Error().Err(err).Msg("gRPC call failed")
		return status.Errorf(codes.Internal, "server error: %v", err)
	}
}
