package anthropic

// BuildCachedSystemBlocks wraps a system prompt in a cacheable block so the
// same prompt across documents and iterations hits the prompt cache instead
// of re-tokenizing.
func BuildCachedSystemBlocks(prompt string) []SystemBlock {
	if prompt == "" {
		return nil
	}
	return []SystemBlock{
		{
			Text:         prompt,
			CacheControl: &CacheControl{TTL: "5m"},
		},
	}
}
