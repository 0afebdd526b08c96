package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"ecometer/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ObjectAPI is the slice of the S3 client the R2 store needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Store keeps each user's snapshot as one JSON object. A single PutObject
// replaces the whole snapshot, so a commit is all-or-nothing.
type R2Store struct {
	Client ObjectAPI
	Bucket string
	Prefix string
}

func NewR2Store(client ObjectAPI, bucket, prefix string) *R2Store {
	return &R2Store{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *R2Store) key(userID string) string {
	return path.Join(s.Prefix, userID+".json")
}

func (s *R2Store) Load(ctx context.Context, userID string) (models.UserState, bool, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(userID)),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return models.UserState{}, false, nil
		}
		return models.UserState{}, false, fmt.Errorf("get %s: %w", s.key(userID), err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return models.UserState{}, false, fmt.Errorf("read %s: %w", s.key(userID), err)
	}
	var state models.UserState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.UserState{}, false, fmt.Errorf("decode %s: %w", s.key(userID), err)
	}
	for i := range state.Goals {
		state.Goals[i].UserID = userID
	}
	for i := range state.Badges {
		state.Badges[i].UserID = userID
	}
	return state, true, nil
}

func (s *R2Store) Commit(ctx context.Context, userID string, state models.UserState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.key(userID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", s.key(userID), err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
