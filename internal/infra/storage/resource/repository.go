package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения ресурсов, их типов и расписаний
// Сервис не управляет каталогом ресурсов, поэтому репозиторий только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetResource получает ресурс по ID
func (r *Repository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"resource_type_id",
		"name",
		"timetable_id",
		"policy_override",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - build select query: %v", ErrBuildQuery, err)
	}

	var resource domain.Resource
	var policyRaw []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.TenantID,
		&resource.ResourceTypeID,
		&resource.Name,
		&resource.TimetableID,
		&policyRaw,
	)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - scan resource: %v", ErrScanRow, err)
	}

	resource.PolicyOverride, err = unmarshalPolicy(policyRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - unmarshal policy override: %v", ErrScanRow, err)
	}

	return &resource, nil
}

// GetResourceType получает тип ресурса по ID
func (r *Repository) GetResourceType(ctx context.Context, id int64) (*domain.ResourceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"timetable_id",
		"default_policy",
	).
		From("resource_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceType - build select query: %v", ErrBuildQuery, err)
	}

	var resourceType domain.ResourceType
	var policyRaw []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resourceType.ID,
		&resourceType.TenantID,
		&resourceType.Name,
		&resourceType.TimetableID,
		&policyRaw,
	)
	if err == sql.ErrNoRows {
		return nil, ErrResourceTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceType - scan resource type: %v", ErrScanRow, err)
	}

	resourceType.DefaultPolicy, err = unmarshalPolicy(policyRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceType - unmarshal default policy: %v", ErrScanRow, err)
	}

	return &resourceType, nil
}

// GetTimetable получает расписание по ID
func (r *Repository) GetTimetable(ctx context.Context, id int64) (*domain.Timetable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"kind",
		"schedule",
	).
		From("timetables").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimetable - build select query: %v", ErrBuildQuery, err)
	}

	var timetable domain.Timetable
	var scheduleRaw []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timetable.ID,
		&timetable.TenantID,
		&timetable.Kind,
		&scheduleRaw,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTimetableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimetable - scan timetable: %v", ErrScanRow, err)
	}

	if len(scheduleRaw) > 0 {
		if err := json.Unmarshal(scheduleRaw, &timetable.Schedule); err != nil {
			return nil, fmt.Errorf("%w: GetTimetable - unmarshal schedule: %v", ErrScanRow, err)
		}
	}

	return &timetable, nil
}

func unmarshalPolicy(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var policy map[string]interface{}
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, err
	}

	return policy, nil
}
