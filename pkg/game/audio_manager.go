package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	// SampleRate 音频上下文采样率
	SampleRate = 48000

	clickFrequency = 880.0
	clickDuration  = 0.03
)

// AudioManager 碰撞音效播放
//
// 音效在启动时合成一次（短促的衰减正弦波），不需要音频资源文件。
// nil 的 *AudioManager 和没有音频上下文的 AudioManager 都是合法的，调用不会有任何效果，
// 无头运行和测试时直接传 nil 即可。
type AudioManager struct {
	bouncePlayer *audio.Player
	enabled      bool
	volume       float64
}

// NewAudioManager 创建音频管理器
//
// 参数:
//   - ctx: ebiten 音频上下文，可为 nil（静音）
//   - enabled: 是否播放音效
//   - volume: 音量 (0.0 ~ 1.0)
//
// 返回:
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, enabled bool, volume float64) *AudioManager {
	am := &AudioManager{
		enabled: enabled,
		volume:  volume,
	}
	if ctx == nil {
		return am
	}

	am.bouncePlayer = ctx.NewPlayerFromBytes(SynthesizeClick(ctx.SampleRate()))
	am.bouncePlayer.SetVolume(volume)
	log.Printf("[AudioManager] 碰撞音效已就绪 (volume: %.2f)", volume)
	return am
}

// PlayBounce 播放一次碰撞音效
// 上一次还没播放完时从头重新播放
//
// 返回:
//   - bool: 是否实际播放
func (am *AudioManager) PlayBounce() bool {
	if am == nil || !am.enabled || am.bouncePlayer == nil {
		return false
	}
	if err := am.bouncePlayer.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind bounce sound: %v", err)
	}
	am.bouncePlayer.Play()
	return true
}

// SetEnabled 开关音效
func (am *AudioManager) SetEnabled(enabled bool) {
	if am == nil {
		return
	}
	am.enabled = enabled
}

// IsEnabled 音效是否开启
func (am *AudioManager) IsEnabled() bool {
	return am != nil && am.enabled
}

// SetVolume 设置音量，超出 [0, 1] 的值会被截断
func (am *AudioManager) SetVolume(volume float64) {
	if am == nil {
		return
	}
	am.volume = math.Max(0, math.Min(1, volume))
	if am.bouncePlayer != nil {
		am.bouncePlayer.SetVolume(am.volume)
	}
}

// GetVolume 返回当前音量
func (am *AudioManager) GetVolume() float64 {
	if am == nil {
		return 0
	}
	return am.volume
}

// SynthesizeClick 生成碰撞音效的 PCM 数据
//
// 格式与 audio.Context 的要求一致：16 位有符号小端、双声道交错。
//
// 参数:
//   - sampleRate: 采样率
//
// 返回:
//   - []byte: PCM 字节，长度为 帧数*4
func SynthesizeClick(sampleRate int) []byte {
	frames := int(float64(sampleRate) * clickDuration)
	buf := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		// 线性衰减包络
		envelope := 1 - float64(i)/float64(frames)
		v := math.Sin(2*math.Pi*clickFrequency*t) * envelope
		sample := uint16(int16(v * math.MaxInt16 * 0.8))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}
