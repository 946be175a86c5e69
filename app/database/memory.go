package database

import (
	"sort"
	"sync"
	"time"

	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests. It mirrors SQLStore
// semantics, including the single-active-PC check and contact cascades; the
// mutex gives each mutation the same all-or-nothing visibility a transaction
// does.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	roles    map[string]*models.Role
	pcs      map[string]*models.PC
	npcs     map[string]*models.NPC
	contacts map[string]*models.Contact
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:    make(map[string]*models.User),
		roles:    make(map[string]*models.Role),
		pcs:      make(map[string]*models.PC),
		npcs:     make(map[string]*models.NPC),
		contacts: make(map[string]*models.Contact),
	}
	// Same role vocabulary seedRoles installs.
	for _, name := range []string{"Player", "GM", "Campaign Owner", "Admin"} {
		s.roles[name] = &models.Role{ID: uuid.NewString(), Name: name}
	}
	return s
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email && user.Active {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok || !user.Active {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) CreateUser(user *models.User, roleNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	roles := make([]*models.Role, 0, len(roleNames))
	for _, name := range roleNames {
		role, ok := s.roles[name]
		if !ok {
			return ErrUnknownRole
		}
		copied := *role
		roles = append(roles, &copied)
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	user.Roles = roles
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *MemoryStore) CreatePC(pc *models.PC, enforceSingleActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enforceSingleActive {
		for _, existing := range s.pcs {
			if existing.Owner == pc.Owner && existing.Status == string(models.StatusActive) {
				return ErrActiveCharacterExists
			}
		}
	}
	pc.ID = uuid.NewString()
	pc.CreatedAt = time.Now()
	pc.UpdatedAt = pc.CreatedAt
	copied := *pc
	s.pcs[pc.ID] = &copied
	return nil
}

func (s *MemoryStore) GetPC(id string) (*models.PC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.pcs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *pc
	return &copied, nil
}

func (s *MemoryStore) ListPCs() ([]*models.PC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pcs := make([]*models.PC, 0, len(s.pcs))
	for _, pc := range s.pcs {
		copied := *pc
		pcs = append(pcs, &copied)
	}
	sort.Slice(pcs, func(i, j int) bool { return pcs[i].CreatedAt.Before(pcs[j].CreatedAt) })
	return pcs, nil
}

func (s *MemoryStore) UpdatePC(pc *models.PC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pcs[pc.ID]; !ok {
		return ErrNotFound
	}
	pc.UpdatedAt = time.Now()
	copied := *pc
	s.pcs[pc.ID] = &copied
	return nil
}

func (s *MemoryStore) DeletePC(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pcs[id]; !ok {
		return ErrNotFound
	}
	delete(s.pcs, id)
	for contactID, contact := range s.contacts {
		if contact.Character == id {
			delete(s.contacts, contactID)
		}
	}
	return nil
}

func (s *MemoryStore) CreateNPC(npc *models.NPC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	npc.ID = uuid.NewString()
	npc.CreatedAt = time.Now()
	npc.UpdatedAt = npc.CreatedAt
	copied := *npc
	s.npcs[npc.ID] = &copied
	return nil
}

func (s *MemoryStore) GetNPC(id string) (*models.NPC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	npc, ok := s.npcs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *npc
	return &copied, nil
}

func (s *MemoryStore) ListNPCs() ([]*models.NPC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	npcs := make([]*models.NPC, 0, len(s.npcs))
	for _, npc := range s.npcs {
		copied := *npc
		npcs = append(npcs, &copied)
	}
	sort.Slice(npcs, func(i, j int) bool { return npcs[i].CreatedAt.Before(npcs[j].CreatedAt) })
	return npcs, nil
}

func (s *MemoryStore) UpdateNPC(npc *models.NPC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.npcs[npc.ID]; !ok {
		return ErrNotFound
	}
	npc.UpdatedAt = time.Now()
	copied := *npc
	s.npcs[npc.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteNPC(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.npcs[id]; !ok {
		return ErrNotFound
	}
	delete(s.npcs, id)
	for contactID, contact := range s.contacts {
		if contact.Contact == id {
			delete(s.contacts, contactID)
		}
	}
	return nil
}

func (s *MemoryStore) CreateContact(contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pcs[contact.Character]; !ok {
		return ErrNoSuchPC
	}
	if _, ok := s.npcs[contact.Contact]; !ok {
		return ErrNoSuchNPC
	}
	contact.ID = uuid.NewString()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	copied := *contact
	s.contacts[contact.ID] = &copied
	return nil
}

func (s *MemoryStore) GetContact(id string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *contact
	return &copied, nil
}

func (s *MemoryStore) UpdateContact(contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contact.ID]; !ok {
		return ErrNotFound
	}
	contact.UpdatedAt = time.Now()
	copied := *contact
	s.contacts[contact.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteContact(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *MemoryStore) ListContactsForPC(pcID string) ([]*models.ContactDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var details []*models.ContactDetail
	for _, contact := range s.contacts {
		if contact.Character != pcID {
			continue
		}
		npc, ok := s.npcs[contact.Contact]
		if !ok {
			continue
		}
		details = append(details, &models.ContactDetail{
			ContactID:  contact.ID,
			Name:       npc.Name,
			Connection: contact.Connection,
			Loyalty:    contact.Loyalty,
			Chips:      contact.Chips,
		})
	}
	return details, nil
}
