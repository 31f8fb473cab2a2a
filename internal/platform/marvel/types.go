package marvel

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// envelope is the wrapper around every catalog response.
type envelope struct {
	Code    apiCode `json:"code"`
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    struct {
		Results []characterResult `json:"results"`
	} `json:"data"`
}

type characterResult struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   struct {
		Path      string `json:"path"`
		Extension string `json:"extension"`
	} `json:"thumbnail"`
}

// apiCode holds the envelope code, which is numeric on success and on most
// errors but a string such as "InvalidCredentials" for authentication errors.
type apiCode string

func (c *apiCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = apiCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return err
	}
	*c = apiCode(n.String())
	return nil
}

func (c apiCode) ok() bool {
	return c == "200"
}
