package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
	"github.com/ahmetyavas01/SahaBul/pkg/errors"
)

// In-memory repository fakes that mirror the store's conditional-write
// semantics: insert-if-absent and update-if-pending behave exactly like
// their Firestore counterparts.

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   map[string]*entity.Match
	order     []string
	createErr error
	watchers  []func()
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*entity.Match)}
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *entity.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if match.ID == "" {
		match.ID = fmt.Sprintf("match-%d", len(f.order)+1)
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	f.matches[match.ID] = match
	f.order = append(f.order, match.ID)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	match, ok := f.matches[id]
	if !ok {
		return nil, errors.NotFound("Match", nil)
	}
	return match, nil
}

func (f *fakeMatchRepo) List(ctx context.Context) ([]*entity.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := make([]*entity.Match, 0, len(f.order))
	for _, id := range f.order {
		matches = append(matches, f.matches[id])
	}
	return matches, nil
}

func (f *fakeMatchRepo) WatchChanges(ctx context.Context, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchers = append(f.watchers, fn)
	index := len(f.watchers) - 1
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.watchers[index] = nil
		})
	}
}

func (f *fakeMatchRepo) fire() {
	f.mu.Lock()
	watchers := append([]func(){}, f.watchers...)
	f.mu.Unlock()

	for _, fn := range watchers {
		if fn != nil {
			fn()
		}
	}
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[string]*entity.Participant
	seq          int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: make(map[string]*entity.Participant)}
}

func (f *fakeParticipantRepo) CreateIfAbsent(ctx context.Context, participant *entity.Participant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if participant.ID == "" {
		participant.ID = entity.ParticipantID(participant.MatchID, participant.UserID)
	}
	if _, exists := f.participants[participant.ID]; exists {
		return errors.Conflict("Participant already exists for this match and user")
	}

	f.seq++
	participant.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	f.participants[participant.ID] = participant
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id string) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[id]
	if !ok {
		return nil, errors.NotFound("Participant", nil)
	}
	return participant, nil
}

func (f *fakeParticipantRepo) GetByMatchAndUser(ctx context.Context, matchID, userID string) (*entity.Participant, error) {
	return f.GetByID(ctx, entity.ParticipantID(matchID, userID))
}

func (f *fakeParticipantRepo) ListByMatch(ctx context.Context, matchID string) ([]*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var participants []*entity.Participant
	for _, p := range f.participants {
		if p.MatchID == matchID {
			participants = append(participants, p)
		}
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].CreatedAt.After(participants[j].CreatedAt)
	})
	return participants, nil
}

func (f *fakeParticipantRepo) UpdateStatusIfPending(ctx context.Context, id, status string) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	participant, ok := f.participants[id]
	if !ok {
		return nil, errors.NotFound("Participant", nil)
	}
	if participant.Status != entity.ParticipantStatusPending {
		return nil, errors.InvalidTransition("Participant has already been " + participant.Status)
	}

	participant.Status = status
	return participant, nil
}

func (f *fakeParticipantRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.participants)
}

type fakeChatRepo struct {
	mu        sync.Mutex
	chats     map[string]*entity.Chat
	messages  map[string][]*entity.Message
	seq       int
	createErr error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (f *fakeChatRepo) GetByMatchID(ctx context.Context, matchID string) (*entity.Chat, error) {
	return f.GetByID(ctx, matchID)
}

func (f *fakeChatRepo) GetOrCreateByMatch(ctx context.Context, matchID string) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil // fail once, like a transient store error
		return nil, err
	}

	if chat, ok := f.chats[matchID]; ok {
		return chat, nil
	}

	chat := &entity.Chat{ID: matchID, MatchID: matchID, CreatedAt: time.Now()}
	f.chats[matchID] = chat
	return chat, nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", f.seq)
	}
	message.CreatedAt = time.Now()
	f.messages[message.ChatID] = append(f.messages[message.ChatID], message)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.messages[chatID]
	total := int64(len(all))

	start := offset
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return all[start:end], total, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetPushTokens(ctx context.Context, userIDs []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var tokens []string
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok && user.PushToken != "" {
			tokens = append(tokens, user.PushToken)
		}
	}
	return tokens, nil
}
