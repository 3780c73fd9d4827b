package voiceRepository

const (
	queryCreateUtterance = `
		INSERT INTO voice_utterances (
			id, user_id, session_id, transcript, intent,
			confidence, outcome, created_at
		) VALUES (
			:id, :user_id, :session_id, :transcript, :intent,
			:confidence, :outcome, :created_at
		)
	`

	queryGetUtterancesByUserID = `
		SELECT
			id, user_id, session_id, transcript, intent,
			confidence, outcome, created_at
		FROM voice_utterances
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountUtterancesByUserID = `
		SELECT COUNT(*)
		FROM voice_utterances
		WHERE user_id = :user_id
	`

	queryCreateRouteMapping = `
		INSERT INTO route_mappings (
			route_id, path, display_name, keywords,
			is_active, created_at, updated_at
		) VALUES (
			:route_id, :path, :display_name, :keywords,
			:is_active, :created_at, :updated_at
		)
	`

	queryGetRouteMappingByID = `
		SELECT
			route_id, path, display_name, keywords,
			is_active, created_at, updated_at
		FROM route_mappings
		WHERE route_id = :route_id AND is_active = true
	`

	queryGetAllRouteMappings = `
		SELECT
			route_id, path, display_name, keywords,
			is_active, created_at, updated_at
		FROM route_mappings
		WHERE is_active = true
		ORDER BY display_name
	`

	queryUpdateRouteMapping = `
		UPDATE route_mappings
		SET
			path = :path,
			display_name = :display_name,
			keywords = :keywords,
			updated_at = :updated_at
		WHERE route_id = :route_id
	`

	queryDeactivateRouteMapping = `
		UPDATE route_mappings
		SET
			is_active = false,
			updated_at = :updated_at
		WHERE route_id = :route_id
	`
)
