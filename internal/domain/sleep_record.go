package domain

import (
	"sort"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/google/uuid"
)

// RecordSource tells how a sleep record entered the journal.
type RecordSource string

const (
	SourceManual  RecordSource = "manual"
	SourceTracked RecordSource = "tracked"
	SourceSensor  RecordSource = "sensor"
)

// SampleKind names a physiological series.
type SampleKind string

const (
	SampleHeartRate   SampleKind = "heart_rate"
	SampleBloodOxygen SampleKind = "blood_oxygen"
)

type SleepRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_sleep_records_user_start;uniqueIndex:idx_sleep_records_user_request" json:"user_id"`
	StartAt         time.Time      `gorm:"not null;index:idx_sleep_records_user_start,sort:desc" json:"start_at"`
	EndAt           time.Time      `gorm:"not null" json:"end_at"`
	Score           int            `gorm:"type:smallint;not null;check:score >= 0 AND score <= 100" json:"score"`
	Source          RecordSource   `gorm:"type:varchar(10);not null;default:'manual'" json:"source"`
	Synthetic       bool           `gorm:"not null;default:false" json:"synthetic"`
	RespiratoryRate float64        `gorm:"not null;default:0" json:"respiratory_rate"`
	LocalTimezone   string         `gorm:"type:varchar(64)" json:"local_timezone,omitempty"`
	ClientRequestID *string        `gorm:"type:varchar(255);uniqueIndex:idx_sleep_records_user_request" json:"client_request_id,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	Stages          []StageSegment `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
	Samples         []HealthSample `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"samples,omitempty"`
	User            User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

type StageSegment struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID uuid.UUID       `gorm:"type:uuid;not null;index" json:"record_id"`
	Stage    analytics.Stage `gorm:"type:varchar(10);not null" json:"stage"`
	StartAt  time.Time       `gorm:"not null" json:"start_at"`
	EndAt    time.Time       `gorm:"not null" json:"end_at"`
}

func (StageSegment) TableName() string {
	return "sleep_stage_segments"
}

type HealthSample struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"record_id"`
	Kind      SampleKind `gorm:"type:varchar(16);not null" json:"kind"`
	Timestamp time.Time  `gorm:"column:sampled_at;not null" json:"timestamp"`
	Value     float64    `gorm:"not null" json:"value"`
}

func (HealthSample) TableName() string {
	return "sleep_health_samples"
}

// Duration returns the time between start and end.
func (r *SleepRecord) Duration() time.Duration {
	return r.EndAt.Sub(r.StartAt)
}

// Location resolves the zone the record was logged in. Invalid or empty
// names fall back to UTC.
func (r *SleepRecord) Location() *time.Location {
	return loadLocation(r.LocalTimezone)
}

// Snapshot converts the record into the analytics value type with every
// timestamp expressed in loc. A nil loc uses the record's own zone.
func (r *SleepRecord) Snapshot(loc *time.Location) analytics.Record {
	if loc == nil {
		loc = r.Location()
	}

	rec := analytics.Record{
		Interval: analytics.Interval{
			Start: r.StartAt.In(loc),
			End:   r.EndAt.In(loc),
		},
		Score:           r.Score,
		RespiratoryRate: r.RespiratoryRate,
	}

	for _, s := range r.Stages {
		rec.Stages = append(rec.Stages, analytics.StageSegment{
			Stage: s.Stage,
			Start: s.StartAt.In(loc),
			End:   s.EndAt.In(loc),
		})
	}
	sort.Slice(rec.Stages, func(i, j int) bool {
		return rec.Stages[i].Start.Before(rec.Stages[j].Start)
	})

	for _, s := range r.Samples {
		sample := analytics.HealthSample{Timestamp: s.Timestamp.In(loc), Value: s.Value}
		switch s.Kind {
		case SampleHeartRate:
			rec.HeartRate = append(rec.HeartRate, sample)
		case SampleBloodOxygen:
			rec.BloodOxygen = append(rec.BloodOxygen, sample)
		}
	}
	sortSamples(rec.HeartRate)
	sortSamples(rec.BloodOxygen)

	return rec
}

// ApplyPhysiology replaces the record's stages, samples and respiratory
// rate with the ones carried by rec.
func (r *SleepRecord) ApplyPhysiology(rec analytics.Record) {
	r.Stages = make([]StageSegment, 0, len(rec.Stages))
	for _, s := range rec.Stages {
		r.Stages = append(r.Stages, StageSegment{
			ID:       uuid.New(),
			RecordID: r.ID,
			Stage:    s.Stage,
			StartAt:  s.Start.UTC(),
			EndAt:    s.End.UTC(),
		})
	}

	r.Samples = make([]HealthSample, 0, len(rec.HeartRate)+len(rec.BloodOxygen))
	r.Samples = appendSamples(r.Samples, r.ID, SampleHeartRate, rec.HeartRate)
	r.Samples = appendSamples(r.Samples, r.ID, SampleBloodOxygen, rec.BloodOxygen)
	r.RespiratoryRate = rec.RespiratoryRate
}

func appendSamples(dst []HealthSample, recordID uuid.UUID, kind SampleKind, src []analytics.HealthSample) []HealthSample {
	for _, s := range src {
		dst = append(dst, HealthSample{
			ID:        uuid.New(),
			RecordID:  recordID,
			Kind:      kind,
			Timestamp: s.Timestamp.UTC(),
			Value:     s.Value,
		})
	}
	return dst
}

func sortSamples(samples []analytics.HealthSample) {
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})
}

// StageInput is one sensor-reported stage segment.
type StageInput struct {
	Stage   analytics.Stage `json:"stage" validate:"required,oneof=awake rem light deep" example:"deep"`
	StartAt time.Time       `json:"start_at" validate:"required"`
	EndAt   time.Time       `json:"end_at" validate:"required,gtfield=StartAt"`
}

// SampleInput is one sensor-reported physiological reading.
type SampleInput struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Value     float64   `json:"value" example:"58"`
}

// CreateSleepRecordRequest is the request body for logging a night of sleep.
// Sensor parts are optional; whatever is missing is generated.
type CreateSleepRecordRequest struct {
	StartAt         time.Time     `json:"start_at" validate:"required"`
	EndAt           time.Time     `json:"end_at" validate:"required,gtfield=StartAt"`
	LocalTimezone   *string       `json:"local_timezone,omitempty" validate:"omitempty,timezone"`
	ClientRequestID *string       `json:"client_request_id,omitempty" validate:"omitempty,max=255"`
	Stages          []StageInput  `json:"stages,omitempty" validate:"omitempty,dive"`
	HeartRate       []SampleInput `json:"heart_rate,omitempty" validate:"omitempty,dive"`
	BloodOxygen     []SampleInput `json:"blood_oxygen,omitempty" validate:"omitempty,dive"`
	RespiratoryRate *float64      `json:"respiratory_rate,omitempty" validate:"omitempty,gt=0"`

	// Source is set by the caller path (HTTP, tracking or MQTT), never by the client.
	Source RecordSource `json:"-" swaggerignore:"true"`
}

// SensorRecord converts the supplied sensor parts into an analytics record
// over the request interval. Score is left zero.
func (req *CreateSleepRecordRequest) SensorRecord() analytics.Record {
	rec := analytics.Record{
		Interval: analytics.Interval{Start: req.StartAt, End: req.EndAt},
	}
	for _, s := range req.Stages {
		rec.Stages = append(rec.Stages, analytics.StageSegment{Stage: s.Stage, Start: s.StartAt, End: s.EndAt})
	}
	for _, s := range req.HeartRate {
		rec.HeartRate = append(rec.HeartRate, analytics.HealthSample{Timestamp: s.Timestamp, Value: s.Value})
	}
	for _, s := range req.BloodOxygen {
		rec.BloodOxygen = append(rec.BloodOxygen, analytics.HealthSample{Timestamp: s.Timestamp, Value: s.Value})
	}
	if req.RespiratoryRate != nil {
		rec.RespiratoryRate = *req.RespiratoryRate
	}
	return rec
}

type StageSegmentResponse struct {
	Stage           analytics.Stage `json:"stage"`
	StartAt         time.Time       `json:"start_at"`
	EndAt           time.Time       `json:"end_at"`
	DurationSeconds int64           `json:"duration_seconds"`
}

type HealthSampleResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// SleepRecordResponse is the response body for sleep record endpoints
type SleepRecordResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	StartAt         time.Time              `json:"start_at"`
	EndAt           time.Time              `json:"end_at"`
	LocalStartAt    time.Time              `json:"local_start_at"`
	LocalEndAt      time.Time              `json:"local_end_at"`
	LocalTimezone   string                 `json:"local_timezone,omitempty"`
	Duration        string                 `json:"duration" example:"7h 45m"`
	DurationSeconds int64                  `json:"duration_seconds"`
	Score           int                    `json:"score" example:"97"`
	Quality         string                 `json:"quality" example:"excellent"`
	Emoji           string                 `json:"emoji" example:"😃"`
	Source          RecordSource           `json:"source"`
	Synthetic       bool                   `json:"synthetic"`
	RespiratoryRate float64                `json:"respiratory_rate"`
	ClientRequestID *string                `json:"client_request_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	StageDurations  map[string]int64       `json:"stage_durations_seconds,omitempty"`
	Stages          []StageSegmentResponse `json:"stages,omitempty"`
	HeartRate       []HealthSampleResponse `json:"heart_rate,omitempty"`
	BloodOxygen     []HealthSampleResponse `json:"blood_oxygen,omitempty"`
}

// ToResponse renders the record. Local times use LocalTimezone, falling
// back to UTC when it is empty or invalid; the name itself is kept as-is.
func (r *SleepRecord) ToResponse() SleepRecordResponse {
	loc := r.Location()
	band := analytics.BandFor(r.Score)
	snap := r.Snapshot(loc)

	resp := SleepRecordResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		LocalStartAt:    r.StartAt.In(loc),
		LocalEndAt:      r.EndAt.In(loc),
		LocalTimezone:   r.LocalTimezone,
		Duration:        analytics.FormatDuration(r.Duration()),
		DurationSeconds: int64(r.Duration() / time.Second),
		Score:           r.Score,
		Quality:         band.Label,
		Emoji:           band.Emoji,
		Source:          r.Source,
		Synthetic:       r.Synthetic,
		RespiratoryRate: r.RespiratoryRate,
		ClientRequestID: r.ClientRequestID,
		CreatedAt:       r.CreatedAt,
	}

	if len(snap.Stages) > 0 {
		resp.StageDurations = make(map[string]int64, len(analytics.AllStages))
		for stage, d := range snap.StageDurations() {
			resp.StageDurations[string(stage)] = int64(d / time.Second)
		}
	}
	for _, s := range snap.Stages {
		resp.Stages = append(resp.Stages, StageSegmentResponse{
			Stage:           s.Stage,
			StartAt:         s.Start,
			EndAt:           s.End,
			DurationSeconds: int64(s.Duration() / time.Second),
		})
	}
	resp.HeartRate = sampleResponses(snap.HeartRate)
	resp.BloodOxygen = sampleResponses(snap.BloodOxygen)

	return resp
}

func sampleResponses(samples []analytics.HealthSample) []HealthSampleResponse {
	if len(samples) == 0 {
		return nil
	}
	out := make([]HealthSampleResponse, len(samples))
	for i, s := range samples {
		out[i] = HealthSampleResponse{Timestamp: s.Timestamp, Value: s.Value}
	}
	return out
}

// SleepRecordListResponse is the paginated response for listing sleep records
type SleepRecordListResponse struct {
	Data       []SleepRecordResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
}

type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// SleepRecordFilter contains filter parameters for listing sleep records
type SleepRecordFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
