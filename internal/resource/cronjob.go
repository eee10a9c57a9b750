/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// NextRun computes a CronJob's next scheduled run after from, for
// describe-style callers. FixUp already validated spec.schedule, but
// NextRun is also reachable for manifests read back from the object
// store, so it re-validates rather than assuming.
func NextRun(r Resource, from time.Time) (time.Time, error) {
	if r.Kind != KindCronJob {
		return time.Time{}, errors.Errorf("NextRun: %s is not a cronjob", r.Kind)
	}
	sched, err := cron.ParseStandard(r.CronJob.Spec.Schedule)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing schedule %q", r.CronJob.Spec.Schedule)
	}
	return sched.Next(from), nil
}
