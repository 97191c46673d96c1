// Package docs registers the Swagger 2.0 document served under /swagger.
// It follows the handler annotations; `swag init -g cmd/api/main.go` rebuilds it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/users": {
			"post": {
				"description": "Create a user with a home timezone and an optional nightly sleep goal (defaults to 8 hours).",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Create a new user",
				"parameters": [
					{
						"description": "User creation request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.CreateUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}": {
			"get": {
				"description": "Get a user's details, sleep goal and tracking state",
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Get user by ID",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep-goal": {
			"put": {
				"description": "Set the nightly sleep target used to score new records (1h to 16h). Existing scores are not recomputed.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Update sleep goal",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "New goal",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.UpdateSleepGoalRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep-records": {
			"get": {
				"description": "Fetch paginated sleep history. Filter by date range. Results sorted by start_at descending (newest first).",
				"produces": [
					"application/json"
				],
				"tags": [
					"sleep-records"
				],
				"summary": "List sleep records",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"format": "date-time",
						"description": "Start of date range (RFC3339)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"format": "date-time",
						"description": "End of date range (RFC3339)",
						"name": "to",
						"in": "query"
					},
					{
						"maximum": 100,
						"minimum": 1,
						"type": "integer",
						"default": 20,
						"description": "Results per page (1-100)",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Cursor from previous response's next_cursor",
						"name": "cursor",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "Sleep records with pagination",
						"schema": {
							"$ref": "#/definitions/domain.SleepRecordListResponse"
						}
					},
					"400": {
						"description": "Invalid cursor or range",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "User not found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Invalid query parameters",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Server error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			},
			"post": {
				"description": "Log sleep and wake times. Stages, heart rate, blood oxygen and respiratory rate are optional; missing parts are generated and the record is flagged synthetic. The score is computed from the user's sleep goal. Use client_request_id for safe retries: returns 200 for a duplicate request, 201 for a new record.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sleep-records"
				],
				"summary": "Record a night of sleep",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "Sleep record",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.CreateSleepRecordRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Existing record returned (idempotent duplicate)",
						"schema": {
							"$ref": "#/definitions/domain.SleepRecordResponse"
						}
					},
					"201": {
						"description": "New record created",
						"schema": {
							"$ref": "#/definitions/domain.SleepRecordResponse"
						}
					},
					"400": {
						"description": "Invalid request body or parameters",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "User not found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"409": {
						"description": "Sleep period overlaps with an existing record",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Validation failed",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Server error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep-records/{recordId}": {
			"get": {
				"description": "Fetch one record with its stages and physiological samples",
				"produces": [
					"application/json"
				],
				"tags": [
					"sleep-records"
				],
				"summary": "Get a sleep record",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "Record UUID",
						"name": "recordId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.SleepRecordResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"sleep-records"
				],
				"summary": "Delete a sleep record",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "Record UUID",
						"name": "recordId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "Record deleted"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/tracking": {
			"get": {
				"description": "Report whether a session is running and for how long",
				"produces": [
					"application/json"
				],
				"tags": [
					"tracking"
				],
				"summary": "Get tracking status",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.TrackingStatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/tracking/start": {
			"post": {
				"description": "Begin a live sleep session. Only one session can run at a time.",
				"produces": [
					"application/json"
				],
				"tags": [
					"tracking"
				],
				"summary": "Start sleep tracking",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.TrackingStatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"409": {
						"description": "A session is already running",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/tracking/stop": {
			"post": {
				"description": "End the running session. The session becomes a \"tracked\" sleep record unless discard is set. The body is optional; end_at defaults to now.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"tracking"
				],
				"summary": "Stop sleep tracking",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "Stop options",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/domain.StopTrackingRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Session discarded",
						"schema": {
							"$ref": "#/definitions/domain.StopTrackingResponse"
						}
					},
					"201": {
						"description": "Session saved as a record",
						"schema": {
							"$ref": "#/definitions/domain.StopTrackingResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"409": {
						"description": "No session running or overlapping record",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/summary": {
			"get": {
				"description": "Average score, duration, typical bed and wake time (circular mean) and stage breakdown for the period ending now. Year view buckets stages per calendar month, averaged per night.",
				"produces": [
					"application/json"
				],
				"tags": [
					"statistics"
				],
				"summary": "Get period statistics",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"enum": [
							"day",
							"week",
							"month",
							"year",
							"all"
						],
						"type": "string",
						"default": "week",
						"description": "Period",
						"name": "period",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.SummaryResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/profile": {
			"get": {
				"description": "Average quality, duration and typical bedtime over every record",
				"produces": [
					"application/json"
				],
				"tags": [
					"statistics"
				],
				"summary": "Get all-time sleep profile",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.SummaryResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/export": {
			"get": {
				"description": "Download the period's records, stages and summary as an xlsx workbook",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"tags": [
					"statistics"
				],
				"summary": "Export sleep records",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"enum": [
							"day",
							"week",
							"month",
							"year",
							"all"
						],
						"type": "string",
						"default": "all",
						"description": "Period",
						"name": "period",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/coach/feedback": {
			"get": {
				"description": "Coaching message for the most recent record, with an addendum when the score moved by 10 or more since the previous night",
				"produces": [
					"application/json"
				],
				"tags": [
					"coach"
				],
				"summary": "Get feedback on the latest night",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CoachFeedbackResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/coach/weekly": {
			"get": {
				"description": "Analysis of the past 7 days. Generated by the LLM when configured (source \"llm\", with a trace_id for feedback); otherwise, or when generation fails, the rule-based report (source \"local\").",
				"produces": [
					"application/json"
				],
				"tags": [
					"coach"
				],
				"summary": "Get the weekly sleep report",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.WeeklyReportResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		},
		"/users/{userId}/sleep/coach/weekly/feedback": {
			"post": {
				"description": "Submit a 1-5 rating and optional comment for a generated report, linked by its trace_id",
				"consumes": [
					"application/json"
				],
				"tags": [
					"coach"
				],
				"summary": "Rate a weekly report",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "User UUID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "Rating",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.WeeklyReportFeedbackRequest"
						}
					}
				],
				"responses": {
					"204": {
						"description": "Rating submitted"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/problem.Problem"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"analytics.Period": {
			"type": "string",
			"enum": [
				"day",
				"week",
				"month",
				"year",
				"all"
			],
			"x-enum-varnames": [
				"PeriodDay",
				"PeriodWeek",
				"PeriodMonth",
				"PeriodYear",
				"PeriodAll"
			]
		},
		"analytics.Stage": {
			"type": "string",
			"enum": [
				"awake",
				"rem",
				"light",
				"deep"
			],
			"x-enum-varnames": [
				"StageAwake",
				"StageREM",
				"StageLight",
				"StageDeep"
			]
		},
		"domain.RecordSource": {
			"type": "string",
			"enum": [
				"manual",
				"sensor",
				"tracked"
			],
			"x-enum-varnames": [
				"SourceManual",
				"SourceSensor",
				"SourceTracked"
			]
		},
		"domain.WeeklyReportSource": {
			"type": "string",
			"enum": [
				"llm",
				"local"
			],
			"x-enum-varnames": [
				"ReportSourceLLM",
				"ReportSourceLocal"
			]
		},
		"domain.CreateUserRequest": {
			"type": "object",
			"required": [
				"timezone"
			],
			"properties": {
				"timezone": {
					"type": "string"
				},
				"sleep_goal_minutes": {
					"type": "integer",
					"maximum": 960,
					"minimum": 60,
					"description": "Optional nightly sleep goal in minutes (defaults to the configured target)"
				}
			}
		},
		"domain.UpdateSleepGoalRequest": {
			"type": "object",
			"properties": {
				"hours": {
					"type": "integer",
					"maximum": 16,
					"minimum": 0,
					"example": 8
				},
				"minutes": {
					"type": "integer",
					"maximum": 59,
					"minimum": 0,
					"example": 0
				}
			},
			"description": "Nightly sleep goal, between 1 and 16 hours."
		},
		"domain.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"timezone": {
					"type": "string"
				},
				"sleep_goal_minutes": {
					"type": "integer"
				},
				"sleep_goal": {
					"type": "string",
					"example": "8h 0m"
				},
				"tracking": {
					"type": "boolean"
				},
				"tracking_started_at": {
					"type": "string",
					"format": "date-time"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.StageInput": {
			"type": "object",
			"required": [
				"stage",
				"start_at",
				"end_at"
			],
			"properties": {
				"stage": {
					"allOf": [
						{
							"$ref": "#/definitions/analytics.Stage"
						}
					],
					"example": "deep"
				},
				"start_at": {
					"type": "string",
					"format": "date-time"
				},
				"end_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.SampleInput": {
			"type": "object",
			"required": [
				"timestamp"
			],
			"properties": {
				"timestamp": {
					"type": "string",
					"format": "date-time"
				},
				"value": {
					"type": "number",
					"example": 58
				}
			}
		},
		"domain.CreateSleepRecordRequest": {
			"type": "object",
			"required": [
				"start_at",
				"end_at"
			],
			"properties": {
				"start_at": {
					"type": "string",
					"format": "date-time"
				},
				"end_at": {
					"type": "string",
					"format": "date-time"
				},
				"local_timezone": {
					"type": "string"
				},
				"client_request_id": {
					"type": "string",
					"maxLength": 255
				},
				"stages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.StageInput"
					}
				},
				"heart_rate": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SampleInput"
					}
				},
				"blood_oxygen": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SampleInput"
					}
				},
				"respiratory_rate": {
					"type": "number"
				}
			}
		},
		"domain.StageSegmentResponse": {
			"type": "object",
			"properties": {
				"stage": {
					"$ref": "#/definitions/analytics.Stage"
				},
				"start_at": {
					"type": "string",
					"format": "date-time"
				},
				"end_at": {
					"type": "string",
					"format": "date-time"
				},
				"duration_seconds": {
					"type": "integer"
				}
			}
		},
		"domain.HealthSampleResponse": {
			"type": "object",
			"properties": {
				"timestamp": {
					"type": "string",
					"format": "date-time"
				},
				"value": {
					"type": "number"
				}
			}
		},
		"domain.SleepRecordResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"start_at": {
					"type": "string",
					"format": "date-time"
				},
				"end_at": {
					"type": "string",
					"format": "date-time"
				},
				"local_start_at": {
					"type": "string",
					"format": "date-time"
				},
				"local_end_at": {
					"type": "string",
					"format": "date-time"
				},
				"local_timezone": {
					"type": "string"
				},
				"duration": {
					"type": "string",
					"example": "7h 45m"
				},
				"duration_seconds": {
					"type": "integer"
				},
				"score": {
					"type": "integer",
					"example": 97
				},
				"quality": {
					"type": "string",
					"example": "excellent"
				},
				"emoji": {
					"type": "string"
				},
				"source": {
					"$ref": "#/definitions/domain.RecordSource"
				},
				"synthetic": {
					"type": "boolean"
				},
				"respiratory_rate": {
					"type": "number"
				},
				"client_request_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"stage_durations_seconds": {
					"type": "object",
					"additionalProperties": {
						"type": "integer",
						"format": "int64"
					}
				},
				"stages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.StageSegmentResponse"
					}
				},
				"heart_rate": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.HealthSampleResponse"
					}
				},
				"blood_oxygen": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.HealthSampleResponse"
					}
				}
			}
		},
		"domain.PaginationResponse": {
			"type": "object",
			"properties": {
				"next_cursor": {
					"type": "string"
				},
				"has_more": {
					"type": "boolean"
				}
			}
		},
		"domain.SleepRecordListResponse": {
			"type": "object",
			"properties": {
				"data": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SleepRecordResponse"
					}
				},
				"pagination": {
					"$ref": "#/definitions/domain.PaginationResponse"
				}
			}
		},
		"domain.TrackingStatusResponse": {
			"type": "object",
			"properties": {
				"tracking": {
					"type": "boolean"
				},
				"started_at": {
					"type": "string",
					"format": "date-time"
				},
				"elapsed": {
					"type": "string",
					"example": "6h 12m"
				},
				"elapsed_seconds": {
					"type": "integer"
				}
			}
		},
		"domain.StopTrackingRequest": {
			"type": "object",
			"properties": {
				"discard": {
					"type": "boolean"
				},
				"end_at": {
					"type": "string",
					"format": "date-time"
				},
				"local_timezone": {
					"type": "string"
				}
			}
		},
		"domain.StopTrackingResponse": {
			"type": "object",
			"properties": {
				"saved": {
					"type": "boolean"
				},
				"record": {
					"$ref": "#/definitions/domain.SleepRecordResponse"
				}
			}
		},
		"domain.StageBucketResponse": {
			"type": "object",
			"properties": {
				"label": {
					"type": "string",
					"example": "2024-03"
				},
				"start": {
					"type": "string",
					"format": "date-time"
				},
				"nights": {
					"type": "integer"
				},
				"durations_seconds": {
					"type": "object",
					"additionalProperties": {
						"type": "integer",
						"format": "int64"
					}
				}
			}
		},
		"domain.SummaryResponse": {
			"type": "object",
			"properties": {
				"period": {
					"allOf": [
						{
							"$ref": "#/definitions/analytics.Period"
						}
					],
					"example": "week"
				},
				"empty": {
					"type": "boolean"
				},
				"from": {
					"type": "string",
					"format": "date-time"
				},
				"to": {
					"type": "string",
					"format": "date-time"
				},
				"nights": {
					"type": "integer"
				},
				"average_score": {
					"type": "integer",
					"example": 86
				},
				"average_quality": {
					"type": "string",
					"example": "excellent (86)"
				},
				"average_emoji": {
					"type": "string"
				},
				"average_duration": {
					"type": "string",
					"example": "7h 40m"
				},
				"average_duration_seconds": {
					"type": "integer"
				},
				"average_bedtime": {
					"type": "string",
					"example": "11:00 PM"
				},
				"average_wake_time": {
					"type": "string",
					"example": "6:40 AM"
				},
				"average_bedtime_minutes": {
					"type": "integer"
				},
				"average_wake_time_minutes": {
					"type": "integer"
				},
				"bedtime_spread_minutes": {
					"type": "integer"
				},
				"wake_time_spread_minutes": {
					"type": "integer"
				},
				"stage_totals_seconds": {
					"type": "object",
					"additionalProperties": {
						"type": "integer",
						"format": "int64"
					}
				},
				"stage_breakdown": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.StageBucketResponse"
					}
				}
			}
		},
		"domain.CoachFeedbackResponse": {
			"type": "object",
			"properties": {
				"feedback": {
					"type": "string"
				},
				"record_id": {
					"type": "string"
				},
				"score": {
					"type": "integer"
				},
				"previous_score": {
					"type": "integer"
				}
			}
		},
		"domain.WeeklyReportResponse": {
			"type": "object",
			"properties": {
				"report": {
					"type": "string"
				},
				"observations": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"guidance": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"source": {
					"allOf": [
						{
							"$ref": "#/definitions/domain.WeeklyReportSource"
						}
					],
					"example": "llm"
				},
				"trace_id": {
					"type": "string"
				},
				"summary": {
					"$ref": "#/definitions/domain.SummaryResponse"
				}
			}
		},
		"domain.WeeklyReportFeedbackRequest": {
			"type": "object",
			"required": [
				"trace_id"
			],
			"properties": {
				"trace_id": {
					"type": "string",
					"maxLength": 128
				},
				"rating": {
					"type": "integer",
					"maximum": 5,
					"minimum": 1,
					"example": 4
				},
				"comment": {
					"type": "string",
					"maxLength": 1000
				}
			}
		},
		"problem.FieldError": {
			"type": "object",
			"properties": {
				"field": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"problem.Problem": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"status": {
					"type": "integer"
				},
				"detail": {
					"type": "string"
				},
				"instance": {
					"type": "string"
				},
				"errors": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/problem.FieldError"
					}
				}
			}
		}
	},
	"tags": [
		{
			"description": "User management endpoints",
			"name": "users"
		},
		{
			"description": "Sleep record endpoints",
			"name": "sleep-records"
		},
		{
			"description": "Live sleep tracking endpoints",
			"name": "tracking"
		},
		{
			"description": "Summaries, profile and export",
			"name": "statistics"
		},
		{
			"description": "Coaching feedback and weekly reports",
			"name": "coach"
		}
	]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Sleep Journal API",
	Description:      "Log nights of sleep, track live sessions, and get scores, period summaries, exports and coaching.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
