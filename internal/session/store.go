// Package session 은 포털 세션의 서버 측 캐시를 제공한다.
//
// session 방식(BEARER_MODE=session)에서만 사용한다. 토큰에는 불투명한
// 핸들만 들어가고, 로그인된 포털 클라이언트는 이 캐시에 핸들을 키로
// 보관된다. 엔트리는 절대 TTL 로 만료되며, 만료 시 포털 세션도 함께
// 닫힌다. 영속화는 하지 않는다.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kumc-dev/anam-gateway/internal/portal"
)

// janitorInterval 은 만료 엔트리 청소 주기.
const janitorInterval = time.Minute

// entry 는 캐시된 포털 세션 하나.
type entry struct {
	// client 는 로그인된 포털 클라이언트.
	client portal.Client
	// expiresAt 은 엔트리의 절대 만료 시각.
	expiresAt time.Time
}

// Store 는 핸들 → 포털 세션의 인메모리 캐시.
// 모든 메서드는 동시 호출에 안전하다.
type Store struct {
	// mu 는 entries 를 보호한다.
	mu sync.Mutex
	// entries 는 핸들을 키로 하는 세션 테이블.
	entries map[string]entry
	// ttl 은 엔트리의 유효 기간. 토큰 TTL 과 같은 값을 쓴다.
	ttl time.Duration
	// done 은 청소 고루틴의 정지 신호.
	done chan struct{}
	// closeOnce 는 Close 의 중복 호출을 막는다.
	closeOnce sync.Once
}

// NewStore 는 새 세션 캐시를 생성하고 청소 고루틴을 시작한다.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put 은 로그인된 포털 클라이언트를 캐시에 넣고 새 핸들을 반환한다.
func (s *Store) Put(client portal.Client) string {
	handle := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = entry{
		client:    client,
		expiresAt: time.Now().Add(s.ttl),
	}
	return handle
}

// Get 은 핸들에 해당하는 포털 클라이언트를 반환한다.
// 핸들이 없거나 만료된 경우 false 를 반환한다.
func (s *Store) Get(handle string) (portal.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[handle]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, handle)
		// 만료된 포털 세션은 그 자리에서 닫는다
		_ = e.client.Close()
		return nil, false
	}
	return e.client, true
}

// Delete 는 핸들의 세션을 캐시에서 제거하고 포털 세션을 닫는다.
// 핸들이 없으면 아무 일도 하지 않는다.
func (s *Store) Delete(handle string) {
	s.mu.Lock()
	e, ok := s.entries[handle]
	if ok {
		delete(s.entries, handle)
	}
	s.mu.Unlock()

	if ok {
		_ = e.client.Close()
	}
}

// Len 은 현재 캐시된 세션 수를 반환한다.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close 는 청소 고루틴을 멈추고 캐시된 모든 포털 세션을 닫는다.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		entries := s.entries
		s.entries = make(map[string]entry)
		s.mu.Unlock()

		for _, e := range entries {
			_ = e.client.Close()
		}
	})
}

// janitor 는 주기적으로 만료 엔트리를 제거한다.
func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

// evictExpired 는 now 시점에 만료된 엔트리를 모두 제거한다.
func (s *Store) evictExpired(now time.Time) {
	var expired []portal.Client

	s.mu.Lock()
	for handle, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, handle)
			expired = append(expired, e.client)
		}
	}
	s.mu.Unlock()

	// 락 밖에서 닫는다
	for _, client := range expired {
		_ = client.Close()
	}
}
