// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// String returns a Reader that passes string values through unchanged.
func String() Reader { return stringReader{} }

type stringReader struct{}

func (stringReader) Kind() Kind                          { return KindString }
func (stringReader) Decode(raw string) (any, error)      { return raw, nil }
func (stringReader) DecodeBody(body []byte) (any, error) { return string(body), nil }

// Int returns a Reader for base-10 signed integers.
func Int() Reader { return intReader{} }

type intReader struct{}

func (intReader) Kind() Kind { return KindInt }

func (intReader) Decode(raw string) (any, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, newDecodeError(KindInt, raw, err)
	}
	return v, nil
}

func (r intReader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }

// Int64 returns a Reader for base-10 signed 64-bit integers.
func Int64() Reader { return int64Reader{} }

type int64Reader struct{}

func (int64Reader) Kind() Kind { return KindInt64 }

func (int64Reader) Decode(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, newDecodeError(KindInt64, raw, err)
	}
	return v, nil
}

func (r int64Reader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }

// Float returns a Reader for decimal floating-point values.
func Float() Reader { return floatReader{} }

type floatReader struct{}

func (floatReader) Kind() Kind { return KindFloat }

func (floatReader) Decode(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, newDecodeError(KindFloat, raw, err)
	}
	return v, nil
}

func (r floatReader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }

// Bool returns a Reader for boolean values in strconv.ParseBool syntax.
func Bool() Reader { return boolReader{} }

type boolReader struct{}

func (boolReader) Kind() Kind { return KindBool }

func (boolReader) Decode(raw string) (any, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, newDecodeError(KindBool, raw, err)
	}
	return v, nil
}

func (r boolReader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }

// Time returns a Reader for RFC 3339 timestamps.
func Time() Reader { return timeReader{} }

type timeReader struct{}

func (timeReader) Kind() Kind { return KindTime }

func (timeReader) Decode(raw string) (any, error) {
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, newDecodeError(KindTime, raw, err)
	}
	return v, nil
}

func (r timeReader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }

// UUID returns a Reader for canonical textual UUIDs.
// Values decode to uuid.UUID.
func UUID() Reader { return uuidReader{} }

type uuidReader struct{}

func (uuidReader) Kind() Kind { return KindUUID }

func (uuidReader) Decode(raw string) (any, error) {
	v, err := uuid.Parse(raw)
	if err != nil {
		return nil, newDecodeError(KindUUID, raw, err)
	}
	return v, nil
}

func (r uuidReader) DecodeBody(body []byte) (any, error) { return r.Decode(string(body)) }
