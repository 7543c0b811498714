// Package store persists the application records (companies, accounts,
// settings) as human-readable JSON files in a data directory. The valuation
// engine never touches storage; the CLI loads snapshots from here, hands
// them to the engine, and writes back the derived records.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/muljin/sharetrack"
)

const (
	companiesFile = "companies.json"
	accountsFile  = "accounts.json"
	settingsFile  = "settings.json"
)

// Store reads and writes the record files under a single directory.
type Store struct {
	dir string
}

// Open returns a store over the given directory, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// read decodes one record file into v. A missing file is not an error: v is
// left at its zero value so a fresh data directory starts empty.
func (s *Store) read(name string, v any) error {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("format error in %q: %w", name, err)
	}
	return nil
}

// write encodes v into one record file, indented so the files stay diffable.
func (s *Store) write(name string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), append(content, '\n'), 0o644)
}

// Companies loads all company records.
func (s *Store) Companies() ([]*sharetrack.Company, error) {
	var companies []*sharetrack.Company
	if err := s.read(companiesFile, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// SaveCompanies writes all company records back.
func (s *Store) SaveCompanies(companies []*sharetrack.Company) error {
	return s.write(companiesFile, companies)
}

// Company returns the record for one asx code, or nil if unknown.
func (s *Store) Company(asxcode string) (*sharetrack.Company, error) {
	companies, err := s.Companies()
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.AsxCode == asxcode {
			return c, nil
		}
	}
	return nil, nil
}

// SaveCompany inserts or replaces one company record.
func (s *Store) SaveCompany(company *sharetrack.Company) error {
	companies, err := s.Companies()
	if err != nil {
		return err
	}
	for i, c := range companies {
		if c.AsxCode == company.AsxCode {
			companies[i] = company
			return s.SaveCompanies(companies)
		}
	}
	return s.SaveCompanies(append(companies, company))
}

// Accounts loads all account records.
func (s *Store) Accounts() ([]sharetrack.Account, error) {
	var accounts []sharetrack.Account
	if err := s.read(accountsFile, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AddAccount creates an account with a fresh id and persists it.
func (s *Store) AddAccount(name string) (sharetrack.Account, error) {
	accounts, err := s.Accounts()
	if err != nil {
		return sharetrack.Account{}, err
	}
	account := sharetrack.Account{
		Name:      name,
		AccountID: uuid.NewString(),
		Created:   time.Now().Format(time.RFC3339),
	}
	if err := s.write(accountsFile, append(accounts, account)); err != nil {
		return sharetrack.Account{}, err
	}
	return account, nil
}

// RenameAccount changes the display name of an existing account.
func (s *Store) RenameAccount(accountID, name string) error {
	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].AccountID == accountID {
			accounts[i].Name = name
			return s.write(accountsFile, accounts)
		}
	}
	return fmt.Errorf("unknown account id %q", accountID)
}

// Settings loads the user settings, or defaults for a fresh directory.
func (s *Store) Settings() (sharetrack.Settings, error) {
	settings := sharetrack.Settings{
		UnitPriceAutoFill: true,
		GstPercent:        sharetrack.M(10, ""),
	}
	if err := s.read(settingsFile, &settings); err != nil {
		return sharetrack.Settings{}, err
	}
	return settings, nil
}

// SaveSettings writes the user settings.
func (s *Store) SaveSettings(settings sharetrack.Settings) error {
	return s.write(settingsFile, settings)
}
