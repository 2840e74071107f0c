package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
)

type BusinessRepository struct {
	mu         sync.Mutex
	businesses map[string]business.Business
	members    map[string]map[string]business.Member // businessID -> userID -> member
}

func NewBusinessRepository() *BusinessRepository {
	return &BusinessRepository{
		businesses: make(map[string]business.Business),
		members:    make(map[string]map[string]business.Member),
	}
}

// Put stores or replaces a business.
func (r *BusinessRepository) Put(biz business.Business) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.businesses[biz.ID] = biz
}

// PutMember stores or replaces a membership.
func (r *BusinessRepository) PutMember(businessID string, m business.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[businessID] == nil {
		r.members[businessID] = make(map[string]business.Member)
	}
	r.members[businessID][m.UserID] = m
}

// GetByID implements business.Repository.
func (r *BusinessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	biz, ok := r.businesses[id]
	if !ok {
		return business.Business{}, business.ErrBusinessNotFound
	}
	return biz, nil
}

// GetMemberRole implements business.Repository.
func (r *BusinessRepository) GetMemberRole(ctx context.Context, userID, businessID string) (user.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[businessID][userID]
	if !ok {
		return "", business.ErrNotAMember
	}
	return m.Role, nil
}

// ListMembers implements business.Repository.
func (r *BusinessRepository) ListMembers(ctx context.Context, businessID string) ([]business.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var members []business.Member
	for _, m := range r.members[businessID] {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}
