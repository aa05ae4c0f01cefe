// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package directory

import "context"

// DefaultPageSize is the page length used by full-directory sweeps.
const DefaultPageSize = 1000

// Pager walks every account in the directory, one page at a time.
//
// # Usage
//
//	pager := directory.NewPager(dir, 0)
//	for pager.Next(ctx) {
//		for _, user := range pager.Users() {
//			...
//		}
//	}
//	if err := pager.Err(); err != nil {
//		return err
//	}
type Pager struct {
	dir      Directory
	pageSize int

	users []User
	token string
	done  bool
	err   error
}

// NewPager creates a pager over dir. A pageSize of zero or less uses
// [DefaultPageSize].
func NewPager(dir Directory, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{dir: dir, pageSize: pageSize}
}

// Next fetches the next page. It returns false when there are no more
// pages or a fetch failed; check Err afterwards.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}

	page, err := p.dir.ListUsers(ctx, p.pageSize, p.token)
	if err != nil {
		p.err = err
		return false
	}

	p.users = page.Users
	p.token = page.NextPageToken
	if p.token == "" {
		p.done = true
	}
	return len(p.users) > 0 || !p.done
}

// Users returns the current page. Valid until the next call to Next.
func (p *Pager) Users() []User {
	return p.users
}

// Err returns the first error encountered while paging, if any.
func (p *Pager) Err() error {
	return p.err
}
