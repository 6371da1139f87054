package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/praxisdesk/clinic_management_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	appointmentRepo := newPgxAppointmentRepository(dbPool)
	partnerRepo := newPgxPartnerRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)
	entryRepo := newPgxFinancialEntryRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AppointmentRepo: appointmentRepo,
		PartnerRepo:     partnerRepo,
		CatalogRepo:     catalogRepo,
		EntryRepo:       entryRepo,
		BankAccountRepo: bankAccountRepo,
	}
}
