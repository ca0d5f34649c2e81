package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/domain"
)

// Encode renders msg as a JSON object with its "action" tag.
func Encode(msg domain.Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Action(), err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Action(), err)
	}
	tag, _ := json.Marshal(msg.Action())
	fields["action"] = tag
	return json.Marshal(fields)
}

// Decode reads a tagged message into its typed variant.
func Decode(data []byte) (domain.Message, error) {
	var head struct {
		Action domain.Action `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	switch head.Action {
	case "":
		return nil, ErrMissingAction
	case domain.ActionHandleTranslation:
		return decodeAs[domain.HandleTranslation](head.Action, data)
	case domain.ActionShowError:
		return decodeAs[domain.ShowError](head.Action, data)
	case domain.ActionUpdateContextMenus:
		return decodeAs[domain.UpdateContextMenus](head.Action, data)
	case domain.ActionTranslate:
		return decodeAs[domain.Translate](head.Action, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, head.Action)
	}
}

func decodeAs[T domain.Message](action domain.Action, data []byte) (domain.Message, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", action, err)
	}
	return v, nil
}
