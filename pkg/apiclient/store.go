package apiclient

import "sync"

// CertificateStore хранит уже полученные сертификаты по ID, чтобы
// повторный просмотр только что полученного сертификата не требовал запроса.
// Записи не устаревают: сертификат неизменяем после выдачи.
// Нулевое значение готово к использованию.
type CertificateStore struct {
	mu    sync.RWMutex
	items map[string]Certificate
}

// NewCertificateStore создает пустое хранилище
func NewCertificateStore() *CertificateStore {
	return &CertificateStore{items: make(map[string]Certificate)}
}

// Get возвращает сертификат, если он уже был получен
func (s *CertificateStore) Get(id string) (Certificate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cert, ok := s.items[id]
	return cert, ok
}

// Put сохраняет сертификат
func (s *CertificateStore) Put(cert Certificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[string]Certificate)
	}
	s.items[cert.ID] = cert
}

// Len возвращает количество сохранённых сертификатов
func (s *CertificateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
