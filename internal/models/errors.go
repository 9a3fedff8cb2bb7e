package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotSignedIn    = status.Errorf(codes.Unauthenticated, "no user is signed in")
	ErrNotVerified    = status.Errorf(codes.PermissionDenied, "signed-in user is not verified")
	ErrUnknownChannel = status.Errorf(codes.InvalidArgument, "unknown channel")
)
