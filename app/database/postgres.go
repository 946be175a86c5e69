package database

import (
	"database/sql"

	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SQLStore implements Store on top of postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// validID rejects strings that cannot be uuids before they reach a query,
// so a request for /api/pc/0 reads as not-found rather than a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *SQLStore) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, active, created_at, updated_at
			  FROM users WHERE email = $1 AND active = true`

	err := s.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Roles, err = s.getUserRoles(user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLStore) GetUserByID(id string) (*models.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	user := &models.User{}
	query := `SELECT id, email, password, active, created_at, updated_at
			  FROM users WHERE id = $1 AND active = true`

	err := s.db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Roles, err = s.getUserRoles(user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLStore) getUserRoles(userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name, r.description
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func (s *SQLStore) CreateUser(user *models.User, roleNames []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	user.ID = uuid.NewString()
	query := `INSERT INTO users (id, email, password, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err = tx.QueryRow(query, user.ID, user.Email, user.Password, user.Active).Scan(
		&user.CreatedAt, &user.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}

	user.Roles = nil
	for _, name := range roleNames {
		var role models.Role
		err := tx.QueryRow(`SELECT id, name, description FROM roles WHERE name = $1`, name).
			Scan(&role.ID, &role.Name, &role.Description)
		if err == sql.ErrNoRows {
			return ErrUnknownRole
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, role.ID); err != nil {
			return err
		}
		user.Roles = append(user.Roles, &role)
	}

	return tx.Commit()
}

func (s *SQLStore) CreatePC(pc *models.PC, enforceSingleActive bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if enforceSingleActive {
		// Row locks cannot guard a row that does not exist yet; serialise
		// creates for the same owner with an advisory lock held to
		// transaction end, then check for an existing Active PC.
		if _, err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext($1))`, pc.Owner); err != nil {
			return err
		}
		var existing string
		err := tx.QueryRow(`SELECT id FROM pcs WHERE owner_id = $1 AND status = 'Active' LIMIT 1`,
			pc.Owner).Scan(&existing)
		if err == nil {
			return ErrActiveCharacterExists
		}
		if err != sql.ErrNoRows {
			return err
		}
	}

	pc.ID = uuid.NewString()
	query := `INSERT INTO pcs (id, name, description, status, owner_id, karma, nuyen, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err = tx.QueryRow(query, pc.ID, pc.Name, pc.Description, pc.Status, pc.Owner, pc.Karma, pc.Nuyen).Scan(
		&pc.CreatedAt, &pc.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) GetPC(id string) (*models.PC, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	pc := &models.PC{}
	query := `SELECT id, name, description, status, owner_id, karma, nuyen, created_at, updated_at
			  FROM pcs WHERE id = $1`

	err := s.db.QueryRow(query, id).Scan(
		&pc.ID, &pc.Name, &pc.Description, &pc.Status, &pc.Owner,
		&pc.Karma, &pc.Nuyen, &pc.CreatedAt, &pc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (s *SQLStore) ListPCs() ([]*models.PC, error) {
	query := `SELECT id, name, description, status, owner_id, karma, nuyen, created_at, updated_at
			  FROM pcs ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pcs []*models.PC
	for rows.Next() {
		pc := &models.PC{}
		if err := rows.Scan(&pc.ID, &pc.Name, &pc.Description, &pc.Status, &pc.Owner,
			&pc.Karma, &pc.Nuyen, &pc.CreatedAt, &pc.UpdatedAt); err != nil {
			return nil, err
		}
		pcs = append(pcs, pc)
	}
	return pcs, rows.Err()
}

func (s *SQLStore) UpdatePC(pc *models.PC) error {
	query := `UPDATE pcs SET name = $1, description = $2, status = $3, karma = $4, nuyen = $5, updated_at = NOW()
			  WHERE id = $6`

	result, err := s.db.Exec(query, pc.Name, pc.Description, pc.Status, pc.Karma, pc.Nuyen, pc.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) DeletePC(id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result, err := s.db.Exec(`DELETE FROM pcs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) CreateNPC(npc *models.NPC) error {
	npc.ID = uuid.NewString()
	query := `INSERT INTO npcs (id, name, description, status, security, connection, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING created_at, updated_at`

	return s.db.QueryRow(query, npc.ID, npc.Name, npc.Description, npc.Status, npc.Security, npc.Connection).Scan(
		&npc.CreatedAt, &npc.UpdatedAt,
	)
}

func (s *SQLStore) GetNPC(id string) (*models.NPC, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	npc := &models.NPC{}
	query := `SELECT id, name, description, status, security, connection, created_at, updated_at
			  FROM npcs WHERE id = $1`

	err := s.db.QueryRow(query, id).Scan(
		&npc.ID, &npc.Name, &npc.Description, &npc.Status, &npc.Security,
		&npc.Connection, &npc.CreatedAt, &npc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return npc, nil
}

func (s *SQLStore) ListNPCs() ([]*models.NPC, error) {
	query := `SELECT id, name, description, status, security, connection, created_at, updated_at
			  FROM npcs ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var npcs []*models.NPC
	for rows.Next() {
		npc := &models.NPC{}
		if err := rows.Scan(&npc.ID, &npc.Name, &npc.Description, &npc.Status, &npc.Security,
			&npc.Connection, &npc.CreatedAt, &npc.UpdatedAt); err != nil {
			return nil, err
		}
		npcs = append(npcs, npc)
	}
	return npcs, rows.Err()
}

func (s *SQLStore) UpdateNPC(npc *models.NPC) error {
	query := `UPDATE npcs SET name = $1, description = $2, status = $3, security = $4, connection = $5, updated_at = NOW()
			  WHERE id = $6`

	result, err := s.db.Exec(query, npc.Name, npc.Description, npc.Status, npc.Security, npc.Connection, npc.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) DeleteNPC(id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result, err := s.db.Exec(`DELETE FROM npcs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) CreateContact(contact *models.Contact) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var parent string
	if !validID(contact.Character) {
		return ErrNoSuchPC
	}
	err = tx.QueryRow(`SELECT id FROM pcs WHERE id = $1`, contact.Character).Scan(&parent)
	if err == sql.ErrNoRows {
		return ErrNoSuchPC
	}
	if err != nil {
		return err
	}

	if !validID(contact.Contact) {
		return ErrNoSuchNPC
	}
	err = tx.QueryRow(`SELECT id FROM npcs WHERE id = $1`, contact.Contact).Scan(&parent)
	if err == sql.ErrNoRows {
		return ErrNoSuchNPC
	}
	if err != nil {
		return err
	}

	contact.ID = uuid.NewString()
	query := `INSERT INTO contacts (id, character_id, contact_id, security, connection, loyalty, chips, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err = tx.QueryRow(query, contact.ID, contact.Character, contact.Contact, contact.Security,
		contact.Connection, contact.Loyalty, contact.Chips).Scan(&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) GetContact(id string) (*models.Contact, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	contact := &models.Contact{}
	query := `SELECT id, character_id, contact_id, security, connection, loyalty, chips, created_at, updated_at
			  FROM contacts WHERE id = $1`

	err := s.db.QueryRow(query, id).Scan(
		&contact.ID, &contact.Character, &contact.Contact, &contact.Security,
		&contact.Connection, &contact.Loyalty, &contact.Chips,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *SQLStore) UpdateContact(contact *models.Contact) error {
	query := `UPDATE contacts SET security = $1, connection = $2, loyalty = $3, chips = $4, updated_at = NOW()
			  WHERE id = $5`

	result, err := s.db.Exec(query, contact.Security, contact.Connection, contact.Loyalty, contact.Chips, contact.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) DeleteContact(id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result, err := s.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (s *SQLStore) ListContactsForPC(pcID string) ([]*models.ContactDetail, error) {
	if !validID(pcID) {
		return nil, nil
	}
	query := `
		SELECT c.id, n.name, c.connection, c.loyalty, c.chips
		FROM contacts c
		JOIN npcs n ON n.id = c.contact_id
		WHERE c.character_id = $1
		ORDER BY c.created_at
	`
	rows, err := s.db.Query(query, pcID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.ContactDetail
	for rows.Next() {
		d := &models.ContactDetail{}
		if err := rows.Scan(&d.ContactID, &d.Name, &d.Connection, &d.Loyalty, &d.Chips); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
