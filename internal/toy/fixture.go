package toy

// TokenizerJSON is a miniature MBart-50 style tokenizer file: a scored
// Unigram vocabulary plus frame tokens, three language codes and a
// mask token. The word list covers the phrases exercised by tests.
const TokenizerJSON = `{
  "version": "1.0",
  "added_tokens": [
    {"id": 0, "content": "<s>", "special": true},
    {"id": 1, "content": "<pad>", "special": true},
    {"id": 2, "content": "</s>", "special": true},
    {"id": 3, "content": "<unk>", "special": true},
    {"id": 23, "content": "en_XX", "special": true},
    {"id": 24, "content": "fr_XX", "special": true},
    {"id": 25, "content": "de_DE", "special": true},
    {"id": 26, "content": "<mask>", "special": true}
  ],
  "model": {
    "type": "Unigram",
    "unk_id": 3,
    "vocab": [
      ["<s>", 0.0],
      ["<pad>", 0.0],
      ["</s>", 0.0],
      ["<unk>", 0.0],
      ["▁", -3.0],
      ["▁hello", -1.0],
      ["▁world", -1.2],
      ["▁bonjour", -1.4],
      ["▁capital", -1.5],
      ["▁of", -1.0],
      ["▁France", -1.1],
      ["▁is", -0.9],
      ["▁The", -1.0],
      [".", -2.5],
      ["▁Paris", -1.1],
      ["▁London", -1.3],
      ["▁Lyon", -1.6],
      [",", -2.6],
      ["▁how", -1.2],
      ["▁are", -1.1],
      ["▁you", -1.0],
      ["?", -2.7],
      ["▁Hello", -1.0]
    ]
  }
}`
