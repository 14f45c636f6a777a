package utils

import (
	"context"

	"refurb-tracker/pkg/contextkeys"
	apperrors "refurb-tracker/pkg/errors"
)

func GetOperatorIDFromCtx(ctx context.Context) (uint64, error) {
	operatorID, ok := ctx.Value(contextkeys.OperatorIDKey).(uint64)
	if !ok || operatorID == 0 {
		return 0, apperrors.ErrOperatorNotInContext
	}
	return operatorID, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.RoleKey).(string)
	return role
}

func WithOperator(ctx context.Context, operatorID uint64, role string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.OperatorIDKey, operatorID)
	return context.WithValue(ctx, contextkeys.RoleKey, role)
}
