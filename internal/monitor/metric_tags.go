package monitor

type MetricTag string

const (
	HttpRequestDurationTag MetricTag = "requests_duration_seconds"
	// Remote API requests
	RemoteAPIRequestDurationTag MetricTag = "remote_api_request_duration_seconds"
	RemoteAPIRequestsTotalTag   MetricTag = "remote_api_requests_total"
	// Wizard
	WizardSessionsStartedTag     MetricTag = "sessions_started_total"
	WizardSessionsExpiredTag     MetricTag = "sessions_expired_total"
	SubmissionsCounterTag        MetricTag = "submissions_total"
	ChannelResolutionsCounterTag MetricTag = "channel_resolutions_total"
	SideEffectFailuresCounterTag MetricTag = "side_effect_failures_total"
	// Scheduler
	CatalogRefreshesTag MetricTag = "catalog_refreshes_total"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HttpRequestDurationTag,
		RemoteAPIRequestDurationTag,
		RemoteAPIRequestsTotalTag,
		WizardSessionsStartedTag,
		WizardSessionsExpiredTag,
		SubmissionsCounterTag,
		ChannelResolutionsCounterTag,
		SideEffectFailuresCounterTag,
		CatalogRefreshesTag,
	}
}
