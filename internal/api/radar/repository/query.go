package radarRepository

const (
	queryCreateRadar = `
		INSERT INTO radars (
			id, user_id, origin, destination, start_date,
			end_date, target_value, monitor_type, is_active,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :origin, :destination, :start_date,
			:end_date, :target_value, :monitor_type, :is_active,
			:created_at, :updated_at
		)
	`

	queryGetRadarByID = `
		SELECT
			id, user_id, origin, destination, start_date,
			end_date, target_value, monitor_type, is_active,
			created_at, updated_at
		FROM radars
		WHERE id = :id AND is_active = true
	`

	queryGetRadarsByUserID = `
		SELECT
			id, user_id, origin, destination, start_date,
			end_date, target_value, monitor_type, is_active,
			created_at, updated_at
		FROM radars
		WHERE user_id = :user_id AND is_active = true
		ORDER BY created_at DESC
	`

	queryCountActiveByRoute = `
		SELECT COUNT(*)
		FROM radars
		WHERE user_id = :user_id
		AND origin = :origin
		AND destination = :destination
		AND is_active = true
	`

	queryDeactivateRadar = `
		UPDATE radars
		SET is_active = false, updated_at = :updated_at
		WHERE id = :id AND is_active = true
	`
)
