package prompt

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunner(t *testing.T, result string, err error) *string {
	t.Helper()
	var label string
	orig := confirmRunner
	confirmRunner = func(p *promptui.Prompt) (string, error) {
		label, _ = p.Label.(string)
		return result, err
	}
	t.Cleanup(func() { confirmRunner = orig })
	return &label
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		result     string
		err        error
		defaultYes bool
		want       bool
		wantErr    error
	}{
		{"Yes", "y", nil, false, true, nil},
		{"YesWord", "YES", nil, false, true, nil},
		{"No", "n", promptui.ErrAbort, true, false, nil},
		{"EmptyDefaultNo", "", promptui.ErrAbort, false, false, nil},
		{"EmptyDefaultYes", "", promptui.ErrAbort, true, true, nil},
		{"Interrupt", "", promptui.ErrInterrupt, true, false, ErrAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubRunner(t, tt.result, tt.err)
			got, err := Confirm("Overwrite config?", tt.defaultYes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm_Label(t *testing.T) {
	label := stubRunner(t, "y", nil)
	_, err := Confirm("Overwrite?", true)
	require.NoError(t, err)
	assert.Equal(t, "Overwrite? [Y/n]", *label)
}

func TestConfirm_OtherError(t *testing.T) {
	stubRunner(t, "x", errors.New("tty gone"))
	_, err := Confirm("Overwrite?", false)
	assert.EqualError(t, err, "tty gone")
}
