// Package anim drives the continuous facial and hand animation state:
// emotion-to-expression mapping, exponential approach blending, the blink
// state machine, idle breathing, and finger pose smoothing.
package anim

type Emotion string

const (
	EmotionNeutral   Emotion = "neutral"
	EmotionHappy     Emotion = "happy"
	EmotionSad       Emotion = "sad"
	EmotionSurprised Emotion = "surprised"
	EmotionAngry     Emotion = "angry"
	EmotionThinking  Emotion = "thinking"
	EmotionExcited   Emotion = "excited"
)

// ParseEmotion converts a wire-format emotion name to an Emotion.
func ParseEmotion(s string) (Emotion, bool) {
	switch Emotion(s) {
	case EmotionNeutral, EmotionHappy, EmotionSad, EmotionSurprised,
		EmotionAngry, EmotionThinking, EmotionExcited:
		return Emotion(s), true
	}
	return EmotionNeutral, false
}

// FacialExpression is a continuous facial parameter vector. EyeOpenness
// uses 1.0 as the relaxed-open baseline; the other parameters rest at 0.
type FacialExpression struct {
	EyeOpenness    float32
	MouthOpenness  float32
	SmileIntensity float32
	BrowRaise      float32
	PrimaryEmotion Emotion
	Intensity      float32
}

// NeutralExpression is the rest state every character starts from.
func NeutralExpression() FacialExpression {
	return FacialExpression{
		EyeOpenness:    1.0,
		PrimaryEmotion: EmotionNeutral,
		Intensity:      0.5,
	}
}

// WithEmotion derives the target expression for a discrete emotion at the
// given intensity, starting from the receiver. Intensity is clamped to
// [0,1] before use. Emotions without a mapping leave the parameters
// unchanged, which reads as "no change requested".
func (e FacialExpression) WithEmotion(emotion Emotion, intensity float32) FacialExpression {
	i := clamp(intensity, 0, 1)

	target := e
	target.PrimaryEmotion = emotion
	target.Intensity = i

	switch emotion {
	case EmotionHappy:
		target.SmileIntensity = i
		target.EyeOpenness = 1.0 + i*0.2
	case EmotionSad:
		target.SmileIntensity = -i * 0.5
		target.EyeOpenness = 1.0 - i*0.3
		target.BrowRaise = -i * 0.4
	case EmotionSurprised:
		target.EyeOpenness = 1.0 + i*0.5
		target.BrowRaise = i * 0.6
		target.MouthOpenness = i * 0.3
	case EmotionThinking:
		target.EyeOpenness = 1.0 - i*0.2
		target.BrowRaise = i * 0.3
	}

	return target
}

// settleEpsilon is the distance below which a parameter snaps to its
// target and the transition counts as finished.
const settleEpsilon = 1e-4

// Blender moves a current expression toward the most recently requested
// target with an exponential approach law. Motion starts on the first
// Update after a retarget; the approach never overshoots.
type Blender struct {
	current FacialExpression
	target  FacialExpression

	// Speed is the approach rate in 1/s; 2.0 settles in roughly two
	// seconds.
	Speed float32
}

func NewBlender() *Blender {
	return &Blender{
		current: NeutralExpression(),
		target:  NeutralExpression(),
		Speed:   2.0,
	}
}

// Current returns the expression as rendered this frame.
func (b *Blender) Current() FacialExpression {
	return b.current
}

// Target returns the expression being approached.
func (b *Blender) Target() FacialExpression {
	return b.target
}

// SetTarget replaces the transition target directly.
func (b *Blender) SetTarget(target FacialExpression) {
	target.Intensity = clamp(target.Intensity, 0, 1)
	b.target = target
}

// SetEmotion maps a discrete emotion + intensity onto a new target.
func (b *Blender) SetEmotion(emotion Emotion, intensity float32) {
	b.SetTarget(b.current.WithEmotion(emotion, intensity))
}

// SetImmediate snaps both current and target, skipping the transition.
func (b *Blender) SetImmediate(expr FacialExpression) {
	expr.Intensity = clamp(expr.Intensity, 0, 1)
	b.current = expr
	b.target = expr
}

// Update advances every parameter toward its target. The factor is capped
// at 1 so an oversized dt lands exactly on the target instead of past it.
func (b *Blender) Update(dt float32) {
	if dt <= 0 {
		return
	}

	factor := dt * b.Speed
	if factor > 1 {
		factor = 1
	}

	b.current.EyeOpenness = approach(b.current.EyeOpenness, b.target.EyeOpenness, factor)
	b.current.MouthOpenness = approach(b.current.MouthOpenness, b.target.MouthOpenness, factor)
	b.current.SmileIntensity = approach(b.current.SmileIntensity, b.target.SmileIntensity, factor)
	b.current.BrowRaise = approach(b.current.BrowRaise, b.target.BrowRaise, factor)
	b.current.PrimaryEmotion = b.target.PrimaryEmotion
	b.current.Intensity = b.target.Intensity
}

// Settled reports whether every parameter has reached its target.
func (b *Blender) Settled() bool {
	return abs(b.current.EyeOpenness-b.target.EyeOpenness) < settleEpsilon &&
		abs(b.current.MouthOpenness-b.target.MouthOpenness) < settleEpsilon &&
		abs(b.current.SmileIntensity-b.target.SmileIntensity) < settleEpsilon &&
		abs(b.current.BrowRaise-b.target.BrowRaise) < settleEpsilon
}

func approach(current, target, factor float32) float32 {
	next := current + (target-current)*factor
	if abs(next-target) < settleEpsilon {
		return target
	}
	return next
}

// MorphWeights maps an expression onto the named morph targets a face
// region may carry. Regions without matching targets ignore the rest.
func MorphWeights(expr FacialExpression, blink float32) map[string]float32 {
	eyeClosure := 1.0 - expr.EyeOpenness
	if blink > eyeClosure {
		eyeClosure = blink
	}

	return map[string]float32{
		"eyesClosed": clamp(eyeClosure, 0, 1),
		"eyesWide":   clamp(expr.EyeOpenness-1.0, 0, 1),
		"jawOpen":    clamp(expr.MouthOpenness, 0, 1),
		"mouthSmile": clamp(expr.SmileIntensity, 0, 1),
		"mouthFrown": clamp(-expr.SmileIntensity, 0, 1),
		"browUp":     clamp(expr.BrowRaise, 0, 1),
		"browDown":   clamp(-expr.BrowRaise, 0, 1),
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
