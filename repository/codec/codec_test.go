package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/codec"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
)

func Test_JSON_RoundTripsAnEntity(t *testing.T) {
	// setup
	document := fixtures.NewDocument("Quarterly report").WithTags("finance", "q3")

	// act
	payload, err := codec.JSON.Marshal(document)
	assert.NoError(t, err)

	var decoded fixtures.Document
	err = codec.JSON.Unmarshal(payload, &decoded)
	assert.NoError(t, err)

	// assert
	assert.Equal(t, document, decoded)
}

func Test_JSON_ProducesValidJSONPayloads(t *testing.T) {
	// setup
	document := fixtures.NewDocument("Quarterly report")

	// act
	payload, err := codec.JSON.Marshal(document)

	// assert
	assert.NoError(t, err)
	assert.True(t, json.Valid(payload), "payload should be storable in a JSONB column")
}

func Test_CBOR_RoundTripsAnEntity(t *testing.T) {
	// setup
	document := fixtures.NewDocument("Binary payload entry").WithTags("archive")

	// act
	payload, err := codec.CBOR.Marshal(document)
	assert.NoError(t, err)

	var decoded fixtures.Document
	err = codec.CBOR.Unmarshal(payload, &decoded)
	assert.NoError(t, err)

	// assert
	assert.Equal(t, document, decoded)
}

func Test_Codecs_ReportTheirNames(t *testing.T) {
	assert.Equal(t, "json", codec.JSON.Name())
	assert.Equal(t, "cbor", codec.CBOR.Name())
}
