package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/forPelevin/viralcut/internal/types"
)

const maxImageBytes = 20 << 20

type Adapter struct {
	client  *http.Client
	allowed []string
}

func New(allowedHosts []string, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Adapter{client: &http.Client{Timeout: timeout}, allowed: allowedHosts}
}

// Fetch downloads (or reads, for local paths) and decodes the thumbnail.
// Every failure wraps types.ErrAssetFetch; there are no retries.
func (a *Adapter) Fetch(ctx context.Context, ref string) (image.Image, error) {
	var (
		b   []byte
		err error
	)
	if isRemote(ref) {
		b, err = a.download(ctx, ref)
	} else {
		b, err = os.ReadFile(localPath(ref))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAssetFetch, err)
	}

	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: decode thumbnail: %v", types.ErrAssetFetch, err)
	}
	return img, nil
}

func (a *Adapter) download(ctx context.Context, ref string) ([]byte, error) {
	if err := ValidateURL(ref, a.allowed); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", ref, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read thumbnail body: %w", err)
	}
	if len(b) > maxImageBytes {
		return nil, fmt.Errorf("thumbnail larger than %d bytes", maxImageBytes)
	}
	return b, nil
}
