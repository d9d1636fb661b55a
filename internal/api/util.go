package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// fieldSet is a decoded JSON object body, kept raw so required-key checks
// can run before the typed decode.
type fieldSet struct {
	raw  []byte
	keys map[string]json.RawMessage
}

func (f fieldSet) has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f.keys[k]; !ok {
			return false
		}
	}
	return true
}

func readFields(w http.ResponseWriter, r *http.Request) (fieldSet, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return fieldSet{}, false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || keys == nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return fieldSet{}, false
	}
	return fieldSet{raw: raw, keys: keys}, true
}

func queryInt(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Status: "error", Message: message})
}
