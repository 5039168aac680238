// Package records converts the loosely typed order, photographer and job
// records exported by the studio's data stores into the canonical model
// types. Field names are matched ignoring case, underscores and hyphens, so
// "scheduledDate", "scheduled_date" and "ScheduledDate" are the same field.
// Normalisation stops here: the planners only ever see model types.
package records
