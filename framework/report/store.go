package report

import "sync"

// Store keeps finished results in the order they were added. It is safe for concurrent use,
// and the zero value is ready to use.
type Store struct {
	results []Result
	byUUID  map[string]int
	lock    sync.RWMutex
}

func NewStore() *Store {
	return &Store{byUUID: make(map[string]int)}
}

// Add stores a result. A result with the same UUID as an earlier one replaces it in place.
func (s *Store) Add(r Result) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.byUUID == nil {
		s.byUUID = make(map[string]int)
	}
	if i, ok := s.byUUID[r.UUID]; ok {
		s.results[i] = r
		return
	}
	s.byUUID[r.UUID] = len(s.results)
	s.results = append(s.results, r)
}

func (s *Store) All() []Result {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Result(nil), s.results...)
}

func (s *Store) Get(uuid string) (Result, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	i, ok := s.byUUID[uuid]
	if !ok {
		return Result{}, false
	}
	return s.results[i], true
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.results)
}
