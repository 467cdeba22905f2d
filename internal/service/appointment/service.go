package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/internal/service/notification"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

// Service owns the creation and transitions of appointment records.
//
// The statut state machine:
//
//	en_attente -> confirme   (assigned doctor only)
//	en_attente -> annule     (either actor)
//	confirme   -> annule     (either actor)
//
// Confirming an already-confirmed appointment is a no-op that succeeds.
// Confirming a cancelled appointment is rejected with a conflict error.
// Rescheduling changes date/heure in place and never touches statut.
type Service struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
	notifier notification.Service
}

func NewService(repo repository.AppointmentRepository, userRepo repository.UserRepository,
	notifier notification.Service) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest, actor model.ActorRef) (*model.Appointment, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}
	medecinID, err := uuid.Parse(req.MedecinID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid medecin id", err)
	}

	if !model.ValidDate(req.Date) {
		return nil, apperrors.BadRequest("date must be formatted YYYY-MM-DD", nil)
	}
	if req.Heure != "" && !model.ValidTimeOfDay(req.Heure) {
		return nil, apperrors.BadRequest("heure must be formatted HH:MM", nil)
	}

	// Patients book for themselves only.
	if actor.Role == model.RolePatient && actor.ID != patientID {
		return nil, apperrors.Forbidden("patients can only book appointments for themselves")
	}

	medecin, err := s.userRepo.Get(ctx, medecinID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("medecin", err)
		}
		return nil, apperrors.Internal(err)
	}
	if !medecin.IsMedecin() {
		return nil, apperrors.BadRequest("referenced user is not a medecin", nil)
	}

	apt := &model.Appointment{
		PatientID:        patientID,
		MedecinID:        medecinID,
		Date:             req.Date,
		Heure:            req.Heure,
		TypeConsultation: req.TypeConsultation,
		Statut:           model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	s.notify(ctx, apt.MedecinID, model.NotificationAppointmentRequested,
		"Nouvelle demande de rendez-vous",
		fmt.Sprintf("Demande de rendez-vous pour le %s", apt.Date))

	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(err)
	}
	return apt, nil
}

// Confirm transitions an appointment to confirme. Only the assigned
// doctor (or an administrator) may confirm.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, actor model.ActorRef) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMedecin(apt, actor); err != nil {
		return nil, err
	}

	switch apt.Statut {
	case model.AppointmentStatusConfirmed:
		// Idempotent: confirming twice succeeds without a write.
		return apt, nil
	case model.AppointmentStatusCancelled:
		return nil, apperrors.Conflict("cannot confirm a cancelled appointment")
	}

	ok, err := s.repo.UpdateStatusFrom(ctx, id, model.AppointmentStatusPending, model.AppointmentStatusConfirmed)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !ok {
		// Lost a race: someone else moved the statut since the read.
		apt, err = s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if apt.Statut == model.AppointmentStatusConfirmed {
			return apt, nil
		}
		return nil, apperrors.Conflict("cannot confirm a cancelled appointment")
	}

	apt.Statut = model.AppointmentStatusConfirmed

	s.notify(ctx, apt.PatientID, model.NotificationAppointmentConfirmed,
		"Rendez-vous confirmé",
		fmt.Sprintf("Votre rendez-vous du %s a été confirmé", apt.Date))

	return apt, nil
}

// Cancel transitions an appointment to annule. Either the assigned
// patient or the assigned doctor may cancel; the operation is idempotent.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor model.ActorRef) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeParticipant(apt, actor); err != nil {
		return nil, err
	}

	if apt.Statut == model.AppointmentStatusCancelled {
		return apt, nil
	}

	if err := s.repo.SetStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return nil, apperrors.Internal(err)
	}
	apt.Statut = model.AppointmentStatusCancelled

	// Both sides learn about a cancellation.
	s.notify(ctx, apt.PatientID, model.NotificationAppointmentCancelled,
		"Rendez-vous annulé",
		fmt.Sprintf("Le rendez-vous du %s a été annulé", apt.Date))
	s.notify(ctx, apt.MedecinID, model.NotificationAppointmentCancelled,
		"Rendez-vous annulé",
		fmt.Sprintf("Le rendez-vous du %s a été annulé", apt.Date))

	return apt, nil
}

// Reschedule overwrites date and heure in place. Statut is deliberately
// left untouched, including for confirmed appointments: re-confirmation
// after a reschedule is a product decision that has not been made.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, heure string, actor model.ActorRef) (*model.Appointment, error) {
	if !model.ValidDate(date) {
		return nil, apperrors.BadRequest("date must be formatted YYYY-MM-DD", nil)
	}
	if heure != "" && !model.ValidTimeOfDay(heure) {
		return nil, apperrors.BadRequest("heure must be formatted HH:MM", nil)
	}

	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeParticipant(apt, actor); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSchedule(ctx, id, date, heure); err != nil {
		return nil, apperrors.Internal(err)
	}
	apt.Date = date
	apt.Heure = heure

	other := apt.MedecinID
	if actor.ID == apt.MedecinID {
		other = apt.PatientID
	}
	s.notify(ctx, other, model.NotificationAppointmentRescheduled,
		"Rendez-vous déplacé",
		fmt.Sprintf("Le rendez-vous a été déplacé au %s", date))

	return apt, nil
}

// Update applies any subset of {statut, date, heure}, routing statut
// changes through the state machine.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest, actor model.ActorRef) (*model.Appointment, error) {
	if req.Date != nil || req.Heure != nil {
		apt, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		date := apt.Date
		heure := apt.Heure
		if req.Date != nil {
			date = *req.Date
		}
		if req.Heure != nil {
			heure = *req.Heure
		}
		if _, err := s.Reschedule(ctx, id, date, heure, actor); err != nil {
			return nil, err
		}
	}

	if req.Statut != nil {
		return s.SetStatus(ctx, id, *req.Statut, actor)
	}
	return s.Get(ctx, id)
}

// SetStatus applies a caller-requested statut through the state machine.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, statut model.AppointmentStatus, actor model.ActorRef) (*model.Appointment, error) {
	if !statut.IsValid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unrecognized statut %q", statut), nil)
	}

	switch statut {
	case model.AppointmentStatusConfirmed:
		return s.Confirm(ctx, id, actor)
	case model.AppointmentStatusCancelled:
		return s.Cancel(ctx, id, actor)
	default:
		return nil, apperrors.Conflict("appointments cannot be moved back to en_attente")
	}
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}

func (s *Service) authorizeMedecin(apt *model.Appointment, actor model.ActorRef) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RoleMedecin && actor.ID == apt.MedecinID {
		return nil
	}
	return apperrors.Forbidden("only the assigned medecin can confirm this appointment")
}

func (s *Service) authorizeParticipant(apt *model.Appointment, actor model.ActorRef) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.ID == apt.PatientID || actor.ID == apt.MedecinID {
		return nil
	}
	return apperrors.Forbidden("only participants can modify this appointment")
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, notifType, title, content string) {
	if err := s.notifier.Notify(ctx, userID, notifType, title, content); err != nil {
		log.Warn().Err(err).
			Str("type", notifType).
			Str("user_id", userID.String()).
			Msg("failed to record notification")
	}
}
