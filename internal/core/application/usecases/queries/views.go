// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read directly from the database and produce response views
// with fixed field sets; they never touch the write-side aggregates.
//
// The nested field sets of the views are a compatibility contract with API
// consumers: recipient address fields, deliveryman identity plus cancellation
// state and avatar artifact, and the signature artifact.
package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// OrderView is the externally visible representation of an order,
// enriched with its related entities.
type OrderView struct {
	ID         uuid.UUID  `json:"id"`
	Product    string     `json:"product"`
	CanceledAt *time.Time `json:"canceled_at"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`

	Recipient   *RecipientView   `json:"recipient"`
	Deliveryman *DeliverymanView `json:"deliveryman"`
	Signature   *FileView        `json:"signature"`
}

// RecipientView carries the recipient address fields used for display.
type RecipientView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Street       string    `json:"street"`
	StreetNumber string    `json:"street_number"`
	Complement   string    `json:"complement"`
	Neighborhood string    `json:"neighborhood"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	ZipCode      string    `json:"zip_code"`
}

// DeliverymanView carries deliveryman identity and cancellation state.
// A soft-canceled deliveryman is still referenced by its orders; callers
// see the cancellation timestamp and decide what to do with it.
type DeliverymanView struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	CanceledAt *time.Time `json:"canceled_at"`
	Avatar     *FileView  `json:"avatar"`
}

// FileView is a stored-artifact reference, used for both deliveryman
// avatars and proof-of-delivery signatures.
type FileView struct {
	ID   uuid.UUID `json:"id"`
	Path string    `json:"path"`
	URL  string    `json:"url"`
}

// orderViewSelect is the shared projection both order queries scan from.
// Recipients are required by the schema; deliveryman, avatar, and signature
// joins are optional.
const orderViewSelect = `
	SELECT
		o.id, o.product, o.canceled_at, o.start_date, o.end_date,
		r.id, r.name, r.street, r.street_number, r.complement, r.neighborhood, r.state, r.city, r.zip_code,
		d.id, d.name, d.email, d.canceled_at,
		av.id, av.path, av.url,
		s.id, s.path, s.url
	FROM orders o
	JOIN recipients r ON r.id = o.recipient_id
	LEFT JOIN deliverymen d ON d.id = o.deliveryman_id
	LEFT JOIN files av ON av.id = d.avatar_id
	LEFT JOIN files s ON s.id = o.signature_id
`

// scanOrderView reads one joined row into a fully assembled OrderView.
func scanOrderView(rows *sql.Rows) (OrderView, error) {
	var (
		view OrderView

		canceledAt sql.NullTime
		startDate  sql.NullTime
		endDate    sql.NullTime

		recipient RecipientView

		deliverymanID         uuid.NullUUID
		deliverymanName       sql.NullString
		deliverymanEmail      sql.NullString
		deliverymanCanceledAt sql.NullTime

		avatarID   uuid.NullUUID
		avatarPath sql.NullString
		avatarURL  sql.NullString

		signatureID   uuid.NullUUID
		signaturePath sql.NullString
		signatureURL  sql.NullString
	)

	err := rows.Scan(
		&view.ID, &view.Product, &canceledAt, &startDate, &endDate,
		&recipient.ID, &recipient.Name, &recipient.Street, &recipient.StreetNumber,
		&recipient.Complement, &recipient.Neighborhood, &recipient.State,
		&recipient.City, &recipient.ZipCode,
		&deliverymanID, &deliverymanName, &deliverymanEmail, &deliverymanCanceledAt,
		&avatarID, &avatarPath, &avatarURL,
		&signatureID, &signaturePath, &signatureURL,
	)
	if err != nil {
		return OrderView{}, err
	}

	view.CanceledAt = nullableTime(canceledAt)
	view.StartDate = nullableTime(startDate)
	view.EndDate = nullableTime(endDate)
	view.Recipient = &recipient

	if deliverymanID.Valid {
		deliveryman := &DeliverymanView{
			ID:         deliverymanID.UUID,
			Name:       deliverymanName.String,
			Email:      deliverymanEmail.String,
			CanceledAt: nullableTime(deliverymanCanceledAt),
		}
		if avatarID.Valid {
			deliveryman.Avatar = &FileView{
				ID:   avatarID.UUID,
				Path: avatarPath.String,
				URL:  avatarURL.String,
			}
		}
		view.Deliveryman = deliveryman
	}

	if signatureID.Valid {
		view.Signature = &FileView{
			ID:   signatureID.UUID,
			Path: signaturePath.String,
			URL:  signatureURL.String,
		}
	}

	return view, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

// collectOrderViews drains a joined result set into assembled views.
func collectOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
