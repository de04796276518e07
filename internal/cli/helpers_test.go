package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAndValidateKind(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "singular kind", arg: "object", want: ObjectKind},
		{name: "plural kind", arg: "objects", want: ObjectKind},
		{name: "cloud vms", arg: "cloudvms", want: CloudVMKind},
		{name: "live mounts", arg: "livemounts", want: LiveMountKind},
		{name: "unknown kind", arg: "widgets", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAndValidateKind(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
