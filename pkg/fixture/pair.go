package fixture

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
	"github.com/lindqvist-oss/bkmerge/pkg/tree"
)

// Pair is a loaded local/remote fixture pair, ready to hand to merge.New or
// merge.WithContents.
type Pair struct {
	Local          *tree.Tree
	LocalContents  map[guid.Guid]string
	Remote         *tree.Tree
	RemoteContents map[guid.Guid]string
}

// LoadPair loads a local and a remote fixture concurrently and returns the
// first error if either load fails. The loads do not observe ctx, so a
// failure of one load does not interrupt the other.
func LoadPair(ctx context.Context, localPath, remotePath string) (*Pair, error) {
	group, _ := errgroup.WithContext(ctx)

	var pair Pair
	group.Go(func() error {
		t, contents, err := Load(localPath)
		if err != nil {
			return err
		}
		pair.Local, pair.LocalContents = t, contents
		return nil
	})
	group.Go(func() error {
		t, contents, err := Load(remotePath)
		if err != nil {
			return err
		}
		pair.Remote, pair.RemoteContents = t, contents
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &pair, nil
}
