// Package listing holds the filter, derive, sort and paginate pipeline shared by
// every listing endpoint. Store drivers translate the same filters and orderings
// into their native queries; the in-memory driver runs the pipeline directly.
package listing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"nomadnest/services/forum/internal/entity"
)

const (
	DefaultPage = 1
	DefaultSize = 4
	MaxSize     = 100
)

type Sort string

const (
	SortRecency Sort = "recency"
	SortScore   Sort = "score"
)

// ParseSort accepts the names the front end sends; anything else is recency.
func ParseSort(s string) Sort {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "score", "popularity", "popular", "votes":
		return SortScore
	default:
		return SortRecency
	}
}

type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	// Keeps (number-1)*size inside int; such a page is past any real result set.
	if number > math.MaxInt/size {
		number = math.MaxInt / size
	}
	return Page{Number: number, Size: size}
}

// ParsePage reads query string values, falling back to defaults on anything unparsable.
func ParsePage(page, size string) Page {
	number, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil {
		number = DefaultPage
	}
	n, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		n = DefaultSize
	}
	return NewPage(number, n)
}

func (p Page) Skip() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt - p.Size
	}
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// Paginate slices one page out of an already ordered sequence.
func Paginate[T any](items []T, p Page) []T {
	start := p.Skip()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type PostFilter struct {
	// Search is matched as a case-insensitive substring of the tag.
	Search      string
	AuthorEmail string
}

func (f PostFilter) Normalize() PostFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.AuthorEmail = strings.TrimSpace(f.AuthorEmail)
	return f
}

func (f PostFilter) Matches(p *entity.Post) bool {
	if f.AuthorEmail != "" && p.AuthorEmail != f.AuthorEmail {
		return false
	}
	if f.Search != "" && !ContainsFold(p.Tag, f.Search) {
		return false
	}
	return true
}

type PostQuery struct {
	Filter PostFilter
	Sort   Sort
	Page   Page
}

// LessPost orders posts for the given mode. Ties on score fall back to
// recency, and ties on time fall back to ascending id.
func LessPost(mode Sort) func(a, b *entity.Post) bool {
	byTime := func(a, b *entity.Post) bool {
		if !a.PostTime.Equal(b.PostTime) {
			return a.PostTime.After(b.PostTime)
		}
		return a.ID < b.ID
	}

	if mode != SortScore {
		return byTime
	}
	return func(a, b *entity.Post) bool {
		if a.VoteDifference != b.VoteDifference {
			return a.VoteDifference > b.VoteDifference
		}
		return byTime(a, b)
	}
}

// RankPosts runs the whole pipeline over a snapshot. The input is not modified.
func RankPosts(posts []*entity.Post, q PostQuery) []*entity.Post {
	filter := q.Filter.Normalize()

	matched := make([]*entity.Post, 0, len(posts))
	for _, p := range posts {
		if filter.Matches(p) {
			derived := *p
			matched = append(matched, derived.Derive())
		}
	}

	less := LessPost(q.Sort)
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	return Paginate(matched, q.Page)
}

// CountPosts is the cardinality of the filter stage alone.
func CountPosts(posts []*entity.Post, f PostFilter) int64 {
	f = f.Normalize()

	var n int64
	for _, p := range posts {
		if f.Matches(p) {
			n++
		}
	}
	return n
}

type CommentFilter struct {
	PostID       string
	ReportedOnly bool
}

func (f CommentFilter) Matches(c *entity.Comment) bool {
	if f.PostID != "" && c.PostID != f.PostID {
		return false
	}
	if f.ReportedOnly && !c.Reported() {
		return false
	}
	return true
}

func LessComment(a, b *entity.Comment) bool {
	if !a.PostTime.Equal(b.PostTime) {
		return a.PostTime.After(b.PostTime)
	}
	return a.ID < b.ID
}

func RankComments(comments []*entity.Comment, f CommentFilter, p Page) []*entity.Comment {
	matched := make([]*entity.Comment, 0, len(comments))
	for _, c := range comments {
		if f.Matches(c) {
			cp := *c
			matched = append(matched, &cp)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return LessComment(matched[i], matched[j]) })
	return Paginate(matched, p)
}

type UserFilter struct {
	// Search is matched as a case-insensitive substring of the name.
	Search string
}

func (f UserFilter) Matches(u *entity.User) bool {
	search := strings.TrimSpace(f.Search)
	return search == "" || ContainsFold(u.Name, search)
}

func LessUser(a, b *entity.User) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}
