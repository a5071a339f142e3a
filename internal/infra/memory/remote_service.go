package memory

import (
	"context"
	"sync"

	"level-assessment-service/internal/domain"
)

// RemoteService is an in-process stand-in for the hosted data service.
// Results are append-only; rooms decide which students a teacher can see.
type RemoteService struct {
	mu      sync.RWMutex
	results []domain.StudentResult
	levels  map[string]domain.Descriptor
	rooms   map[string]map[string]struct{}
	names   map[string]string
}

func NewRemoteService() *RemoteService {
	return &RemoteService{
		levels: make(map[string]domain.Descriptor),
		rooms:  make(map[string]map[string]struct{}),
		names:  make(map[string]string),
	}
}

// AddMember puts email into roomID, creating the room on first use.
func (s *RemoteService) AddMember(roomID, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		s.rooms[roomID] = members
	}
	members[email] = struct{}{}
}

func (s *RemoteService) SaveResult(_ context.Context, user domain.User, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.DisplayName != "" && user.Email != "" {
		s.names[user.Email] = user.DisplayName
	}
	result.Answers = append([]domain.Answer(nil), result.Answers...)
	s.results = append(s.results, domain.StudentResult{
		StudentEmail: user.Email,
		DisplayName:  user.DisplayName,
		Result:       result,
	})
	return nil
}

func (s *RemoteService) FetchResultsForTeacher(_ context.Context, teacher domain.User) ([]domain.StudentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := make(map[string]struct{})
	for _, members := range s.rooms {
		if _, ok := members[teacher.Email]; !ok {
			continue
		}
		for email := range members {
			if email != teacher.Email {
				visible[email] = struct{}{}
			}
		}
	}

	out := make([]domain.StudentResult, 0)
	for _, r := range s.results {
		if r.StudentEmail == "" {
			continue
		}
		if _, ok := visible[r.StudentEmail]; !ok {
			continue
		}
		if name, ok := s.names[r.StudentEmail]; ok {
			r.DisplayName = name
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RemoteService) SaveCurrentLevel(_ context.Context, user domain.User, level, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[user.Email] = domain.Descriptor{Level: level, Description: description}
	return nil
}

// Results returns every mirrored result in arrival order.
func (s *RemoteService) Results() []domain.StudentResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StudentResult(nil), s.results...)
}

// CurrentLevel returns the last level integrated for email.
func (s *RemoteService) CurrentLevel(email string) (domain.Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.levels[email]
	return d, ok
}
