package clients_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

type fixture struct {
	uc      *clients.UseCase
	users   *sqlite.UserRepo
	clients *sqlite.ClientRepo
	tx      clients.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.ApplyMigrations(db))

	f := &fixture{
		users:   sqlite.NewUserRepository(db),
		clients: sqlite.NewClientRepository(db),
		tx:      sqlite.NewTxRunner(db),
	}
	f.uc = clients.NewUseCase(f.clients, f.tx, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) principal(t *testing.T, email string) entity.Principal {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.Must(uuid.NewV7()).String(), Email: email, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.users.Create(context.Background(), u))
	return entity.Principal{UserID: u.ID, Email: u.Email}
}

func (f *fixture) create(t *testing.T, p entity.Principal, nom, prenom string) *entity.Client {
	t.Helper()
	c, err := f.uc.Create(context.Background(), p, dto.ClientRequest{Nom: &nom, Prenom: &prenom})
	require.NoError(t, err)
	return c
}

func str(s string) *string { return &s }

func clientIDs(list []*entity.Client) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Scope y búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SoloClientesDelPrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	bob := f.principal(t, "bob@example.com")

	a1 := f.create(t, alice, "Martin", "Léa")
	a2 := f.create(t, alice, "Dupont", "Jean")
	f.create(t, bob, "Albert", "Paul")

	list, err := f.uc.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, []string{a2.ID, a1.ID}, clientIDs(list))
	for _, c := range list {
		assert.Equal(t, alice.UserID, c.UserID)
	}

	n, err := f.uc.Count(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestList_BusquedaReduceElScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	bob := f.principal(t, "bob@example.com")

	dupont := f.create(t, alice, "Dupont", "Jean")
	f.create(t, alice, "Martin", "Léa")
	f.create(t, bob, "Dupont", "Paul")

	full, err := f.uc.List(ctx, alice, "")
	require.NoError(t, err)

	found, err := f.uc.List(ctx, alice, "dup")
	require.NoError(t, err)
	assert.Equal(t, []string{dupont.ID}, clientIDs(found))
	assert.Subset(t, clientIDs(full), clientIDs(found))

	blank, err := f.uc.List(ctx, alice, "   ")
	require.NoError(t, err)
	assert.Equal(t, clientIDs(full), clientIDs(blank), "una búsqueda en blanco no filtra")

	byEmail, err := f.uc.List(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)
}

func TestList_RegistraLaBusquedaNormalizada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	f.create(t, alice, "Dupont", "Jean")

	var buf bytes.Buffer
	uc := clients.NewUseCase(f.clients, f.tx, zerolog.New(&buf).Level(zerolog.DebugLevel))

	_, err := uc.List(ctx, alice, "  DUP,  Jéan ")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"query":"dup jéan"`)
	assert.Contains(t, buf.String(), alice.UserID)

	buf.Reset()
	_, err = uc.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "sin búsqueda no se registra nada")
}

func TestShow_ClienteAjenoEsNoEncontrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	bob := f.principal(t, "bob@example.com")
	c := f.create(t, bob, "Dupont", "Paul")

	_, err := f.uc.Show(ctx, alice, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, errMissing := f.uc.Show(ctx, alice, "no-existe")
	assert.ErrorIs(t, errMissing, domain.ErrNotFound)
	assert.Equal(t, err.Error(), errMissing.Error(), "ajeno e inexistente son indistinguibles")

	got, err := f.uc.Show(ctx, bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "DUPONT", got.Nom)
}

func TestOperaciones_SinPrincipal(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.List(context.Background(), entity.Principal{}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.Create(context.Background(), entity.Principal{}, dto.ClientRequest{Nom: str("A"), Prenom: str("b")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones individuales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaYAsignaDueno(t *testing.T) {
	f := newFixture(t)
	alice := f.principal(t, "alice@example.com")

	c, err := f.uc.Create(context.Background(), alice, dto.ClientRequest{
		Nom: str("lefèvre"), Prenom: str("Élodie"), Description: str("notas"),
		DateDebut: str("2025-01-15"), DateFin: str(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "LEFÈVRE", c.Nom)
	assert.Equal(t, "Élodie", c.Prenom, "prenom no se normaliza")
	assert.Equal(t, alice.UserID, c.UserID)
	assert.Equal(t, "alice@example.com", c.OwnerEmail)
	require.NotNil(t, c.DateDebut)
	assert.Equal(t, "2025-01-15", c.DateDebut.Format(dto.DateLayout))
	assert.Nil(t, c.DateFin)
	assert.Equal(t, fixedNow, c.CreatedAt)
}

func TestCreate_ValidacionNoPersiste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")

	_, err := f.uc.Create(ctx, alice, dto.ClientRequest{Nom: str("  "), DateFin: str("19/10/2026")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"nom", "prenom", "date_fin"}, verr.Fields)

	n, err := f.clients.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdate_NormalizaNomYAplicaSoloCamposPresentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	c, err := f.uc.Create(ctx, alice, dto.ClientRequest{Nom: str("Martin"), Prenom: str("Léa"), Description: str("original")})
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, alice, c.ID, dto.ClientRequest{Nom: str("dupont")})
	require.NoError(t, err)
	assert.Equal(t, "DUPONT", updated.Nom)
	assert.Equal(t, "Léa", updated.Prenom)
	assert.Equal(t, "original", updated.Description)

	stored, err := f.uc.Show(ctx, alice, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "DUPONT", stored.Nom)
	assert.Equal(t, alice.UserID, stored.UserID)
}

func TestUpdate_InvalidoNoModifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	c := f.create(t, alice, "Martin", "Léa")

	_, err := f.uc.Update(ctx, alice, c.ID, dto.ClientRequest{Nom: str("Nouveau"), Prenom: str("")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasField("prenom"))

	stored, err := f.uc.Show(ctx, alice, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "MARTIN", stored.Nom)
	assert.Equal(t, "Léa", stored.Prenom)
}

func TestUpdateYDelete_ClienteAjeno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	bob := f.principal(t, "bob@example.com")
	c := f.create(t, bob, "Dupont", "Paul")

	_, err := f.uc.Update(ctx, alice, c.ID, dto.ClientRequest{Nom: str("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, alice, c.ID), domain.ErrNotFound)

	stored, err := f.uc.Show(ctx, bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "DUPONT", stored.Nom)
}

func TestDelete_EliminaUnSoloCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	c := f.create(t, alice, "Dupont", "Jean")
	f.create(t, alice, "Martin", "Léa")

	require.NoError(t, f.uc.Delete(ctx, alice, c.ID))
	_, err := f.uc.Show(ctx, alice, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := f.uc.Count(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScopeFor(t *testing.T) {
	scope := clients.ScopeFor(entity.Principal{UserID: "u1", Email: "a@b.c"})
	assert.Equal(t, repository.ClientScope{OwnerID: "u1"}, scope)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización masiva
// ──────────────────────────────────────────────────────────────────────────────

// failingTx delega en el runner real pero hace fallar UpdateDateFin para los ids indicados.
type failingTx struct {
	inner clients.TxRunner
	fail  map[string]bool
}

func (f failingTx) Run(ctx context.Context, fn func(repository.ClientRepository) error) error {
	return f.inner.Run(ctx, func(repo repository.ClientRepository) error {
		return fn(failingRepo{ClientRepository: repo, fail: f.fail})
	})
}

type failingRepo struct {
	repository.ClientRepository
	fail map[string]bool
}

func (r failingRepo) UpdateDateFin(ctx context.Context, scope repository.ClientScope, id string, d time.Time) error {
	if r.fail[id] {
		return errors.New("disco lleno")
	}
	return r.ClientRepository.UpdateDateFin(ctx, scope, id, d)
}

func TestBulkUpdateEndDate_SoloClientesPropios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	bob := f.principal(t, "bob@example.com")
	a1 := f.create(t, alice, "Dupont", "Jean")
	a2 := f.create(t, alice, "Martin", "Léa")
	b1 := f.create(t, bob, "Albert", "Paul")

	out, err := f.uc.BulkUpdateEndDate(ctx, alice, []string{a1.ID, a2.ID, b1.ID, "missing", a1.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Requested)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 2, out.Updated)
	assert.False(t, out.NothingSelected)
	assert.Equal(t, "2 client(s) mis à jour.", out.Notice())

	for _, id := range []string{a1.ID, a2.ID} {
		c, err := f.uc.Show(ctx, alice, id)
		require.NoError(t, err)
		require.NotNil(t, c.DateFin)
		assert.Equal(t, "2026-10-19", c.DateFin.Format(dto.DateLayout))
	}

	foreign, err := f.uc.Show(ctx, bob, b1.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign.DateFin, "el cliente de bob no se toca")
}

func TestBulkUpdateEndDate_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	a1 := f.create(t, alice, "Dupont", "Jean")
	a2 := f.create(t, alice, "Martin", "Léa")

	first, err := f.uc.BulkUpdateEndDate(ctx, alice, []string{a1.ID, a2.ID})
	require.NoError(t, err)
	second, err := f.uc.BulkUpdateEndDate(ctx, alice, []string{a1.ID, a2.ID})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBulkUpdateEndDate_SeleccionGrande(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	a1 := f.create(t, alice, "Dupont", "Jean")

	sel := make([]string, 0, 40001)
	for i := 0; i < 40000; i++ {
		sel = append(sel, fmt.Sprintf("ghost-%05d", i))
	}
	sel = append(sel, a1.ID)

	out, err := f.uc.BulkUpdateEndDate(ctx, alice, sel)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 1, out.Updated)
}

func TestBulkUpdateEndDate_FalloParcialNoDetieneElLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.principal(t, "alice@example.com")
	a1 := f.create(t, alice, "Albert", "Jean")
	a2 := f.create(t, alice, "Bernard", "Léa")
	a3 := f.create(t, alice, "Charles", "Paul")

	tx := failingTx{inner: f.tx, fail: map[string]bool{a2.ID: true}}
	uc := clients.NewUseCase(f.clients, tx, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })

	out, err := uc.BulkUpdateEndDate(ctx, alice, []string{a1.ID, a2.ID, a3.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.Updated)

	for id, want := range map[string]bool{a1.ID: true, a2.ID: false, a3.ID: true} {
		c, err := f.uc.Show(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, want, c.DateFin != nil, "cliente %s", c.Nom)
	}
}

// untouchedRepo y untouchedTx fallan el test ante cualquier acceso al almacenamiento.
type untouchedRepo struct {
	repository.ClientRepository
	t *testing.T
}

func (r untouchedRepo) ListByIDs(context.Context, repository.ClientScope, []string) ([]*entity.Client, error) {
	r.t.Fatal("ListByIDs no debe llamarse con selección vacía")
	return nil, nil
}

type untouchedTx struct{ t *testing.T }

func (u untouchedTx) Run(context.Context, func(repository.ClientRepository) error) error {
	u.t.Fatal("no debe abrirse transacción con selección vacía")
	return nil
}

func TestBulkUpdateEndDate_SeleccionVacia(t *testing.T) {
	uc := clients.NewUseCase(untouchedRepo{t: t}, untouchedTx{t: t}, zerolog.Nop())
	alice := entity.Principal{UserID: "u1", Email: "alice@example.com"}

	for _, sel := range [][]string{nil, {}, {"", ""}} {
		out, err := uc.BulkUpdateEndDate(context.Background(), alice, sel)
		require.NoError(t, err)
		assert.True(t, out.NothingSelected)
		assert.Zero(t, out.Updated)
		assert.Zero(t, out.Total)
		assert.Equal(t, "Aucun client sélectionné.", out.Notice())
	}
}
