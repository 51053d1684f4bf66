// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package load reads opcodesDB catalogues from the
// filesystem.
package load

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/TheNewJavaman/asm-matcher/opcodesdb"
)

// File reads and loads the named catalogue. The
// format is chosen from the file extension, and
// overrides l.Format.
func File(l opcodesdb.Loader, name string) (*opcodesdb.Database, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	l.Format = opcodesdb.FormatFor(name)
	db, err := l.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return db, nil
}

// Files loads the named catalogues concurrently,
// with at most jobs loads in progress at once.
// The databases are returned in the same order
// as names. If any load fails, the first error
// is returned.
func Files(ctx context.Context, l opcodesdb.Loader, names []string, jobs int) ([]*opcodesdb.Database, error) {
	dbs := make([]*opcodesdb.Database, len(names))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			// Skip the remaining work once
			// a load has failed.
			if err := ctx.Err(); err != nil {
				return err
			}

			db, err := File(l, name)
			if err != nil {
				return err
			}

			dbs[i] = db
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return dbs, nil
}
