package post

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/kana/pkg/core"
)

// VerifyError describes a media file that does not match its info.
type VerifyError struct {
	ID       core.ID
	Check    string
	Expected string
	Actual   string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("post %s: %s mismatch (expected %s, got %s)", e.ID, e.Check, e.Expected, e.Actual)
}

func (e *VerifyError) Unwrap() error {
	return ErrMediaMismatch
}

// VerifyMedia runs every check the info allows (filesize first, it is cheaper).
func (p *Post) VerifyMedia(ctx context.Context, opts ...core.Option) error {
	if err := p.VerifyMediaByFilesize(ctx, opts...); err != nil {
		return err
	}
	return p.VerifyMediaByMD5(ctx, opts...)
}

// VerifyMediaByMD5 compares the media digest with the info "md5" field.
// Without that field, only the presence of the file is checked.
func (p *Post) VerifyMediaByMD5(ctx context.Context, _ ...core.Option) error {
	f, err := p.openMedia()
	if err != nil {
		return err
	}
	defer f.Close()

	expected, _ := p.info["md5"].(string)
	if expected == "" {
		return nil
	}

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash media: %w", err)
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return &VerifyError{ID: p.id, Check: "md5", Expected: expected, Actual: actual}
	}
	return nil
}

// VerifyMediaByFilesize compares the media size with the info "file_size" field.
// Without that field, only the presence of the file is checked.
func (p *Post) VerifyMediaByFilesize(ctx context.Context, _ ...core.Option) error {
	f, err := p.openMedia()
	if err != nil {
		return err
	}
	defer f.Close()

	raw, ok := p.info["file_size"]
	if !ok {
		return nil
	}
	expected, err := parseSize(raw)
	if err != nil {
		return err
	}

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.Size() != expected {
		return &VerifyError{
			ID:       p.id,
			Check:    "file_size",
			Expected: strconv.FormatInt(expected, 10),
			Actual:   strconv.FormatInt(st.Size(), 10),
		}
	}
	return nil
}

func parseSize(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("invalid file_size type %T", raw)
	}
}

func (p *Post) openMedia() (*os.File, error) {
	path, err := p.mediaPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoMedia, path)
	}
	return f, err
}
