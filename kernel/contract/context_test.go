package contract

import "testing"

func TestResponse_HasError(t *testing.T) {
	type fields struct {
		Status  int
		Message string
		Body    []byte
	}
	tests := []struct {
		name   string
		fields fields
		want   bool
	}{
		{
			name: "no error",
			fields: fields{
				Status: StatusOK,
			},
			want: false,
		},
		{
			name: "threshold error",
			fields: fields{
				Status: StatusErrorThreshold,
			},
			want: true,
		},
		{
			name: "normal error",
			fields: fields{
				Status: StatusError,
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{
				Status:  tt.fields.Status,
				Message: tt.fields.Message,
				Body:    tt.fields.Body,
			}
			if got := r.HasError(); got != tt.want {
				t.Errorf("Response.HasError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLimits_AddExceed(t *testing.T) {
	used := Limits{Cpu: 1, XFee: 2}
	used.Add(Limits{Cpu: 2, Memory: 3}).Add(Limits{Disk: 4, XFee: 1})
	want := Limits{Cpu: 3, Memory: 3, Disk: 4, XFee: 3}
	if used != want {
		t.Fatalf("Limits.Add() = %+v, want %+v", used, want)
	}

	tests := []struct {
		name  string
		limit Limits
		want  bool
	}{
		{"equal", want, false},
		{"cpu", Limits{Cpu: 2, Memory: 3, Disk: 4, XFee: 3}, true},
		{"memory", Limits{Cpu: 3, Memory: 2, Disk: 4, XFee: 3}, true},
		{"disk", Limits{Cpu: 3, Memory: 3, Disk: 3, XFee: 3}, true},
		{"fee", Limits{Cpu: 3, Memory: 3, Disk: 4, XFee: 2}, true},
		{"max", MaxLimits, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := used.Exceed(tt.limit); got != tt.want {
				t.Errorf("Limits.Exceed() = %v, want %v", got, tt.want)
			}
		})
	}
}
