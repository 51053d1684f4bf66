// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"strings"

	"golang.org/x/mod/semver"
)

// canonical returns v as a canonical semantic
// version, or the empty string.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	return semver.Canonical(v)
}

// checkVersion returns a *VersionError unless got
// has the same major version as want.
func checkVersion(got, want string) error {
	gotSemver := canonical(got)
	wantSemver := canonical(want)
	if gotSemver == "" || wantSemver == "" || semver.Major(gotSemver) != semver.Major(wantSemver) {
		return &VersionError{Got: got, Want: want}
	}

	return nil
}

// checkUnique ensures that keys which are
// expected to be unique actually are.
func checkUnique(db *Database) error {
	// seen maps each key to the path of the
	// field where it was first defined.
	type seen map[string]string
	check := func(s seen, path, key string) error {
		if prev, ok := s[key]; ok {
			return &DuplicateError{Path: path, Key: key, Previous: prev}
		}

		s[key] = path
		return nil
	}

	enums := make(seen, len(db.Enums))
	for i, enum := range db.Enums {
		base := indexPath("enums", i)
		err := check(enums, fieldPath(base, "id"), enum.ID)
		if err != nil {
			return err
		}

		items := make(seen, len(enum.Items))
		for j, item := range enum.Items {
			err := check(items, fieldPath(indexPath(fieldPath(base, "items"), j), "name"), item.Name)
			if err != nil {
				return err
			}
		}
	}

	widths := make(seen, len(db.Widths))
	for i, width := range db.Widths {
		err := check(widths, fieldPath(indexPath("widths", i), "name"), width.Name)
		if err != nil {
			return err
		}
	}

	records := make(seen, len(db.Records))
	for i, rec := range db.Records {
		err := check(records, fieldPath(indexPath("records", i), "id"), rec.ID)
		if err != nil {
			return err
		}
	}

	return nil
}
