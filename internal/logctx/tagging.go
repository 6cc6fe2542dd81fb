package logctx

import (
	"context"
	"nodetrace/internal/global"
)

// Returns a child context with newTag appended to the tag list.
// The parent's list is copied, never shared.
func AppendCtxTag(ctx context.Context, newTag string) (newCtx context.Context) {
	old := GetTagList(ctx)
	tags := make([]string, 0, len(old)+1)
	tags = append(tags, old...)
	tags = append(tags, newTag)

	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Replaces the tag list with a copy of newList
func OverwriteCtxTag(ctx context.Context, newList []string) (newCtx context.Context) {
	newCtx = context.WithValue(ctx, global.LogTagsKey, append([]string(nil), newList...))
	return
}

// Extracts a copy of the tag list from context or returns empty list
func GetTagList(ctx context.Context) (tags []string) {
	stored, _ := ctx.Value(global.LogTagsKey).([]string)
	tags = append([]string{}, stored...)
	return
}
