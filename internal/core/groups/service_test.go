package groups

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGroupRepo struct {
	bySlug map[string]*Group
	nextID int64
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{bySlug: make(map[string]*Group)}
}

func (m *mockGroupRepo) Create(ctx context.Context, group *Group) (*Group, error) {
	if _, ok := m.bySlug[group.Slug]; ok {
		return nil, ErrSlugTaken
	}
	m.nextID++
	group.ID = m.nextID
	m.bySlug[group.Slug] = group
	return group, nil
}

func (m *mockGroupRepo) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	if g, ok := m.bySlug[slug]; ok {
		return g, nil
	}
	return nil, ErrGroupNotFound
}

func (m *mockGroupRepo) List(ctx context.Context) ([]*Group, error) {
	var out []*Group
	for _, g := range m.bySlug {
		out = append(out, g)
	}
	return out, nil
}

func TestCreateGroup(t *testing.T) {
	svc := NewService(newMockGroupRepo())
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, CreateGroupRequest{
		Title:       "Test Group",
		Slug:        "Test-Slug",
		Description: "a test group",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-slug", group.Slug, "slugs are normalized to lowercase")
	assert.Equal(t, "Test Group", group.Title)
}

func TestCreateGroup_InvalidSlug(t *testing.T) {
	svc := NewService(newMockGroupRepo())
	ctx := context.Background()

	for _, slug := range []string{"", "has space", "UPPER CASE!", "double--hyphen", "-leading"} {
		_, err := svc.CreateGroup(ctx, CreateGroupRequest{Title: "t", Slug: slug})
		assert.Error(t, err, "slug %q should be rejected", slug)
	}
}

func TestCreateGroup_DuplicateSlug(t *testing.T) {
	svc := NewService(newMockGroupRepo())
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, CreateGroupRequest{Title: "a", Slug: "dup"})
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, CreateGroupRequest{Title: "b", Slug: "dup"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewService(newMockGroupRepo())

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
