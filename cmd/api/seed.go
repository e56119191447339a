package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/careflow-api/internal/config"
	dbpkg "github.com/BruksfildServices01/careflow-api/internal/db"
	domainAppt "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/infra/repository"
	"github.com/BruksfildServices01/careflow-api/internal/logging"
	"github.com/BruksfildServices01/careflow-api/internal/models"
	ucAppt "github.com/BruksfildServices01/careflow-api/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/careflow-api/internal/usecase/user"
)

const seedActor = "system"

type seedUser struct {
	key      string
	email    string
	name     string
	password string
	role     user.Role
}

var seedUsers = []seedUser{
	{"john", "john.doe@example.com", "John Doe", "password123", user.RolePatient},
	{"jane", "jane.smith@example.com", "Jane Smith", "password123", user.RolePatient},
	{"bob", "bob.wilson@example.com", "Bob Wilson", "password123", user.RolePatient},
	{"sarah", "sarah.johnson@hospital.com", "Dr. Sarah Johnson", "password123", user.RoleDoctor},
	{"michael", "michael.chen@hospital.com", "Dr. Michael Chen", "password123", user.RoleDoctor},
	{"emily", "emily.davis@hospital.com", "Emily Davis", "password123", user.RoleReceptionist},
	{"admin", "admin@hospital.com", "Admin User", "admin123", user.RoleAdmin},
}

type seedAppointment struct {
	patient string
	doctor  string
	inDays  int
	time    string
	reason  string
	status  domainAppt.Status
}

var seedAppointments = []seedAppointment{
	{"john", "sarah", 1, "09:00", "Annual checkup", ""},
	{"john", "michael", 7, "14:00", "Follow-up consultation with cardiologist", ""},
	{"jane", "sarah", 2, "10:30", "Flu symptoms", ""},
	{"jane", "sarah", -14, "11:00", "Blood test review", domainAppt.StatusCompleted},
	{"bob", "michael", 3, "15:30", "Chest pain evaluation", ""},
	{"bob", "michael", -3, "08:30", "Blood pressure check", domainAppt.StatusCancelled},
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo users for every role and demo appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logging.Install(logging.New(cfg.LogLevel, cfg.LogFormat))
			return withMongo(cmd.Context(), cfg, seed)
		},
	}
}

func addAdminCmd() *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "add-admin",
		Short: "Create an admin account, or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logging.Install(logging.New(cfg.LogLevel, cfg.LogFormat))

			return withMongo(cmd.Context(), cfg, func(ctx context.Context, m *dbpkg.Mongo) error {
				users := repository.NewUserMongoRepository(m.Database())
				u, err := ensureUser(ctx, users, seedUser{
					email:    email,
					name:     name,
					password: password,
					role:     user.RoleAdmin,
				})
				if err != nil {
					return err
				}
				fmt.Printf("admin ready: %s (%s)\n", u.Email, u.ID.Hex())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "admin@careflow.ai", "admin email")
	cmd.Flags().StringVar(&name, "name", "Admin User", "admin display name")
	cmd.Flags().StringVar(&password, "password", "admin123", "admin password")

	return cmd
}

func withMongo(ctx context.Context, cfg *config.Config, fn func(context.Context, *dbpkg.Mongo) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m, err := dbpkg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.Close(context.Background())

	return fn(ctx, m)
}

// seed is idempotent: existing accounts are reused and appointments are
// only inserted into an empty collection.
func seed(ctx context.Context, m *dbpkg.Mongo) error {
	users := repository.NewUserMongoRepository(m.Database())
	appointments := repository.NewAppointmentMongoRepository(m.Database())

	byKey := make(map[string]*models.User, len(seedUsers))
	for _, su := range seedUsers {
		u, err := ensureUser(ctx, users, su)
		if err != nil {
			return err
		}
		byKey[su.key] = u
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("seed user ready")
	}

	existing, err := appointments.List(ctx, domainAppt.ListQuery{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("appointments already present, skipping")
		return nil
	}

	create := ucAppt.NewCreateAppointment(appointments, nil)
	update := ucAppt.NewUpdateAppointment(appointments, nil)
	today := time.Now()

	for _, sa := range seedAppointments {
		p, d := byKey[sa.patient], byKey[sa.doctor]
		reason := sa.reason

		v, err := create.Execute(ctx, ucAppt.CreateAppointmentInput{
			ActorID:     seedActor,
			PatientID:   p.ID.Hex(),
			PatientName: p.Name,
			DoctorID:    d.ID.Hex(),
			DoctorName:  d.Name,
			Date:        today.AddDate(0, 0, sa.inDays).Format(domainAppt.DateLayout),
			Time:        sa.time,
			Reason:      &reason,
		})
		if err != nil {
			return fmt.Errorf("seed appointment %s/%s: %w", sa.patient, sa.doctor, err)
		}

		if sa.status != "" {
			status := string(sa.status)
			if _, err := update.Execute(ctx, seedActor, v.ID, domainAppt.Patch{Status: &status}); err != nil {
				return err
			}
		}
	}

	log.Info().Int("count", len(seedAppointments)).Msg("seed appointments created")
	return nil
}

// ensureUser creates su, or moves an existing account with the same email
// to su's role.
func ensureUser(ctx context.Context, users user.Repository, su seedUser) (*models.User, error) {
	manage := ucUser.NewManage(users, nil, nil)

	u, err := manage.Create(ctx, ucUser.CreateUserInput{
		ActorID:  seedActor,
		Email:    su.email,
		Name:     su.name,
		Password: su.password,
		Role:     su.role,
	})
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrEmailTaken) {
		return nil, err
	}

	existing, err := users.FindByEmail(ctx, su.email)
	if err != nil {
		return nil, err
	}
	if existing.Role == string(su.role) {
		return existing, nil
	}
	return manage.UpdateRole(ctx, seedActor, existing.ID, string(su.role))
}
